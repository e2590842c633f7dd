package api

import (
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	parks "github.com/goliatone/go-parks"
)

// TrailsController serves the trail resource
type TrailsController struct {
	Logger parks.Logger
	Repo   parks.RepositoryManager
}

func NewTrailsController(repo parks.RepositoryManager, logger parks.Logger) *TrailsController {
	return &TrailsController{
		Logger: logger,
		Repo:   repo,
	}
}

func (c *TrailsController) List(ctx router.Context) error {
	records, err := c.Repo.Trails().List(ctx.Context())
	if err != nil {
		c.Logger.Error("trails list error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

// ListInPark returns every trail belonging to the park in the route
func (c *TrailsController) ListInPark(ctx router.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}

	records, err := c.Repo.Trails().ListInPark(ctx.Context(), id)
	if err != nil {
		c.Logger.Error("trails list in park error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

func (c *TrailsController) Show(ctx router.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}

	record, err := c.Repo.Trails().GetByID(ctx.Context(), id)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (c *TrailsController) Create(ctx router.Context) error {
	payload := new(TrailRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("trail create parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse trail"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid trail"))
	}

	taken, err := c.Repo.Trails().ExistsByName(ctx.Context(), payload.Name)
	if err != nil {
		c.Logger.Error("trail create name check", "error", err)
		return RespondError(ctx, err)
	}

	if taken {
		return RespondError(ctx, goerrors.New("trail already exists", goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict))
	}

	parkExists, err := c.Repo.Parks().Exists(ctx.Context(), payload.NationalParkID)
	if err != nil {
		c.Logger.Error("trail create park check", "error", err)
		return RespondError(ctx, err)
	}

	if !parkExists {
		return RespondError(ctx, goerrors.New("national park not found", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest))
	}

	record, err := c.Repo.Trails().Create(ctx.Context(), payload.Record())
	if err != nil {
		c.Logger.Error("trail create error", "error", err)
		return RespondError(ctx, err)
	}

	ctx.SetHeader("Location", "/api/v1/trails/"+strconv.FormatInt(record.ID, 10))
	return ctx.JSON(router.StatusCreated, record)
}

func (c *TrailsController) Update(ctx router.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}

	payload := new(TrailRequest)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("trail update parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse trail"))
	}

	if payload.ID != 0 && payload.ID != id {
		return RespondError(ctx, errIDMismatch)
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid trail"))
	}

	record := payload.Record()
	record.ID = id

	if err := c.Repo.Trails().Update(ctx.Context(), record); err != nil {
		c.Logger.Error("trail update error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.NoContent(router.StatusNoContent)
}

func (c *TrailsController) Delete(ctx router.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}

	exists, err := c.Repo.Trails().Exists(ctx.Context(), id)
	if err != nil {
		c.Logger.Error("trail delete check", "error", err)
		return RespondError(ctx, err)
	}

	if !exists {
		return RespondError(ctx, goerrors.New("trail not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound))
	}

	if err := c.Repo.Trails().Delete(ctx.Context(), &parks.Trail{ID: id}); err != nil {
		c.Logger.Error("trail delete error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.NoContent(router.StatusNoContent)
}
