package http

import (
	"github.com/kisxo/SikshaSathi-Backend/core/service/study"
	"github.com/kisxo/SikshaSathi-Backend/pkg/apperr"
	"github.com/kisxo/SikshaSathi-Backend/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ResourceHandler serves book recommendations and YouTube search.
type ResourceHandler struct {
	resourceService *study.ResourceService
}

// NewResourceHandler creates a ResourceHandler.
func NewResourceHandler(resourceService *study.ResourceService) *ResourceHandler {
	return &ResourceHandler{resourceService: resourceService}
}

// Register mounts the resource routes.
func (h *ResourceHandler) Register(router fiber.Router) {
	group := router.Group("/resources")
	group.Post("/books", h.GenerateBooks)
	group.Get("/books", h.ListBooks)
	group.Post("/yt", h.SearchVideos)
}

type resourceRequest struct {
	Topic string `json:"topic"`
}

// GenerateBooks recommends books for a topic and stores the result.
func (h *ResourceHandler) GenerateBooks(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	var req resourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if req.Topic == "" {
		return apperr.MissingField("topic")
	}

	resource, err := h.resourceService.GenerateBooks(c.Context(), userID, req.Topic)
	if err != nil {
		return err
	}
	return response.Created(c, resource)
}

// ListBooks returns the authenticated user's stored book resources.
func (h *ResourceHandler) ListBooks(c *fiber.Ctx) error {
	userID, err := GetUserID(c)
	if err != nil {
		return err
	}

	pagination := response.GetPagination(c, 20, 100)
	resources, err := h.resourceService.ListResources(c.Context(), userID, "book", pagination.Limit, pagination.Offset)
	if err != nil {
		return err
	}
	return response.OK(c, resources)
}

// SearchVideos returns YouTube lectures for a topic.
func (h *ResourceHandler) SearchVideos(c *fiber.Ctx) error {
	if _, err := GetUserID(c); err != nil {
		return err
	}

	var req resourceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperr.BadRequest("invalid request body")
	}
	if req.Topic == "" {
		return apperr.MissingField("topic")
	}

	videos, err := h.resourceService.SearchVideos(c.Context(), req.Topic)
	if err != nil {
		return err
	}
	return response.OK(c, videos)
}
