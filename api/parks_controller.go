package api

import (
	"strconv"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-router"

	parks "github.com/goliatone/go-parks"
)

// ParksController serves the national park resource
type ParksController struct {
	Logger parks.Logger
	Repo   parks.RepositoryManager
}

func NewParksController(repo parks.RepositoryManager, logger parks.Logger) *ParksController {
	return &ParksController{
		Logger: logger,
		Repo:   repo,
	}
}

func (c *ParksController) List(ctx router.Context) error {
	records, err := c.Repo.Parks().List(ctx.Context())
	if err != nil {
		c.Logger.Error("parks list error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, records)
}

func (c *ParksController) Show(ctx router.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}

	record, err := c.Repo.Parks().GetByID(ctx.Context(), id)
	if err != nil {
		return RespondError(ctx, err)
	}

	return ctx.JSON(router.StatusOK, record)
}

func (c *ParksController) Create(ctx router.Context) error {
	payload := new(ParkRequest)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("park create parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse national park"))
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid national park"))
	}

	// The check and the insert are not atomic; a concurrent create with the
	// same name can still slip through.
	taken, err := c.Repo.Parks().ExistsByName(ctx.Context(), payload.Name)
	if err != nil {
		c.Logger.Error("park create name check", "error", err)
		return RespondError(ctx, err)
	}

	if taken {
		return RespondError(ctx, goerrors.New("national park already exists", goerrors.CategoryConflict).
			WithCode(goerrors.CodeConflict))
	}

	record, err := c.Repo.Parks().Create(ctx.Context(), payload.Record())
	if err != nil {
		c.Logger.Error("park create error", "error", err)
		return RespondError(ctx, err)
	}

	ctx.SetHeader("Location", "/api/v1/nationalparks/"+strconv.FormatInt(record.ID, 10))
	return ctx.JSON(router.StatusCreated, record)
}

func (c *ParksController) Update(ctx router.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}

	payload := new(ParkRequest)
	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("park update parse payload", "error", err)
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryBadInput, "could not parse national park"))
	}

	if payload.ID != 0 && payload.ID != id {
		return RespondError(ctx, errIDMismatch)
	}

	if err := payload.Validate(); err != nil {
		return RespondError(ctx, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid national park"))
	}

	record := payload.Record()
	record.ID = id

	if err := c.Repo.Parks().Update(ctx.Context(), record); err != nil {
		c.Logger.Error("park update error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.NoContent(router.StatusNoContent)
}

func (c *ParksController) Delete(ctx router.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return RespondError(ctx, err)
	}

	exists, err := c.Repo.Parks().Exists(ctx.Context(), id)
	if err != nil {
		c.Logger.Error("park delete check", "error", err)
		return RespondError(ctx, err)
	}

	if !exists {
		return RespondError(ctx, goerrors.New("national park not found", goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound))
	}

	if err := c.Repo.Parks().Delete(ctx.Context(), &parks.NationalPark{ID: id}); err != nil {
		c.Logger.Error("park delete error", "error", err)
		return RespondError(ctx, err)
	}

	return ctx.NoContent(router.StatusNoContent)
}

var errIDMismatch = goerrors.New("record id does not match route id", goerrors.CategoryBadInput).
	WithCode(goerrors.CodeBadRequest)

func pathID(ctx router.Context) (int64, error) {
	raw := ctx.Param("id", "")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerrors.New("invalid record id", goerrors.CategoryBadInput).
			WithCode(goerrors.CodeBadRequest)
	}
	return id, nil
}
