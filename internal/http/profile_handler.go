package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	middleware "pet-sitter.com/pet-sitter/internal/http/middlewares"
	"pet-sitter.com/pet-sitter/internal/http/validators"
	"pet-sitter.com/pet-sitter/internal/services"
)

func (h *Handler) CreateSitter(c echo.Context) error {
	req, err := validators.Bind(c, validators.Sitter...)
	if err != nil {
		return err
	}

	sitter, err := h.sitterService.CreateProfile(c.Request().Context(), middleware.ActorID(c), services.SitterProfile{
		Bio:          req.Bio,
		ServiceTypes: req.ServiceTypes,
		HourlyRate:   req.HourlyRate,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, sitter)
}

func (h *Handler) GetSitter(c echo.Context) error {
	sitter, err := h.sitterService.GetProfile(c.Request().Context(), c.Param("user_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sitter)
}

func (h *Handler) UpdateSitter(c echo.Context) error {
	req, err := validators.Bind(c, validators.Sitter...)
	if err != nil {
		return err
	}

	sitter, err := h.sitterService.UpdateProfile(c.Request().Context(), middleware.ActorID(c), services.SitterProfile{
		Bio:          req.Bio,
		ServiceTypes: req.ServiceTypes,
		HourlyRate:   req.HourlyRate,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, sitter)
}

func (h *Handler) CreatePet(c echo.Context) error {
	req, err := validators.Bind(c, validators.Pet...)
	if err != nil {
		return err
	}

	pet, err := h.petService.Create(c.Request().Context(), middleware.ActorID(c), services.PetInput{
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		Age:      req.Age,
		Notes:    req.Notes,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, pet)
}

func (h *Handler) ListPets(c echo.Context) error {
	pets, err := h.petService.List(c.Request().Context(), middleware.ActorID(c))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, pets)
}

func (h *Handler) GetPet(c echo.Context) error {
	pet, err := h.petService.Get(c.Request().Context(), middleware.ActorID(c), c.Param("pet_id"))
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, pet)
}

func (h *Handler) UpdatePet(c echo.Context) error {
	req, err := validators.Bind(c, validators.Pet...)
	if err != nil {
		return err
	}

	pet, err := h.petService.Update(c.Request().Context(), middleware.ActorID(c), req.PetID, services.PetInput{
		Name:     req.Name,
		Species:  req.Species,
		Breed:    req.Breed,
		Age:      req.Age,
		Notes:    req.Notes,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, pet)
}

func (h *Handler) DeletePet(c echo.Context) error {
	if err := h.petService.Delete(c.Request().Context(), middleware.ActorID(c), c.Param("pet_id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
