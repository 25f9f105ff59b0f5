package constants

type TaskStatus string

// TaskStatusNone is the NULL state: no applicant has been accepted or is pending.
const (
	TaskStatusNone      TaskStatus = ""
	TaskStatusPending   TaskStatus = "PENDING"
	TaskStatusUnPaid    TaskStatus = "UN_PAID"
	TaskStatusTracking  TaskStatus = "TRACKING"
	TaskStatusCompleted TaskStatus = "COMPLETED"
)

type TaskPublic string

const (
	TaskPublicOpen          TaskPublic = "OPEN"
	TaskPublicClosed        TaskPublic = "CLOSED"
	TaskPublicInTransaction TaskPublic = "IN_TRANSACTION"
	TaskPublicDeleted       TaskPublic = "DELETED"
	TaskPublicCompleted     TaskPublic = "COMPLETED"
)

type ServiceType string

const (
	ServiceDogWalking ServiceType = "DOG_WALKING"
	ServicePetSitting ServiceType = "PET_SITTING"
	ServiceBoarding   ServiceType = "BOARDING"
	ServiceDropIn     ServiceType = "DROP_IN"
	ServiceGrooming   ServiceType = "GROOMING"
)

func (s ServiceType) Valid() bool {
	switch s {
	case ServiceDogWalking, ServicePetSitting, ServiceBoarding, ServiceDropIn, ServiceGrooming:
		return true
	}
	return false
}
