package webapp

import (
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/client"
)

// TrailsPageController serves the trail management pages
type TrailsPageController struct {
	Logger    parks.Logger
	Endpoints Endpoints
	Sessions  *SessionManager
	Trails    *client.Repository[parks.Trail]
	Parks     *client.Repository[parks.NationalPark]
	Views     *TrailsPageViews
}

type TrailsPageViews struct {
	Index  string
	Upsert string
}

func NewTrailsPageController(sessions *SessionManager, endpoints Endpoints, logger parks.Logger) *TrailsPageController {
	return &TrailsPageController{
		Logger:    logger,
		Endpoints: endpoints,
		Sessions:  sessions,
		Trails:    client.NewRepository[parks.Trail](),
		Parks:     client.NewRepository[parks.NationalPark](),
		Views: &TrailsPageViews{
			Index:  "trails/index",
			Upsert: "trails/upsert",
		},
	}
}

func (c *TrailsPageController) Index(ctx router.Context) error {
	principal, _ := c.Sessions.Principal(ctx)
	return ctx.Render(c.Views.Index, router.ViewContext{
		"principal": principal,
	})
}

// Data feeds the trail table
func (c *TrailsPageController) Data(ctx router.Context) error {
	token, _ := c.Sessions.Token(ctx)

	records, err := c.Trails.GetAll(ctx.Context(), c.Endpoints.Trails(), token)
	if err != nil {
		c.Logger.Error("trails data fetch", "error", err)
		records = []parks.Trail{}
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"data": records,
	})
}

func (c *TrailsPageController) UpsertShow(ctx router.Context) error {
	principal, _ := c.Sessions.Principal(ctx)
	token, _ := c.Sessions.Token(ctx)

	parkList, err := c.Parks.GetAll(ctx.Context(), c.Endpoints.NationalParks(), token)
	if err != nil {
		c.Logger.Error("trail upsert parks fetch", "error", err)
	}

	view := router.ViewContext{
		"record":       &parks.Trail{},
		"parks":        parkList,
		"difficulties": difficulties(),
		"principal":    principal,
	}

	raw := ctx.Param("id", "")
	if raw == "" {
		return ctx.Render(c.Views.Upsert, view)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ctx.Redirect("/trails", router.StatusSeeOther)
	}

	record, err := c.Trails.Get(ctx.Context(), c.Endpoints.Trails(), id, token)
	if err != nil {
		c.Logger.Error("trail upsert fetch", "id", id, "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"system_message": "Could not load trail",
		}).Redirect("/trails", router.StatusSeeOther)
	}

	view["record"] = record
	return ctx.Render(c.Views.Upsert, view)
}

// TrailForm is the upsert payload
type TrailForm struct {
	ID             int64   `form:"id" json:"id"`
	Name           string  `form:"name" json:"name"`
	Distance       float64 `form:"distance" json:"distance"`
	Elevation      float64 `form:"elevation" json:"elevation"`
	Difficulty     string  `form:"difficulty" json:"difficulty"`
	NationalParkID int64   `form:"national_park_id" json:"national_park_id"`
}

// Validate will run validation rules
func (r TrailForm) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.Distance, validation.Required, validation.Min(0.0)),
		validation.Field(&r.Difficulty,
			validation.Required,
			validation.In(
				parks.DifficultyEasy,
				parks.DifficultyModerate,
				parks.DifficultyDifficult,
				parks.DifficultyExpert,
			),
		),
		validation.Field(&r.NationalParkID, validation.Required),
	)
}

// Record maps the form onto a model record
func (r TrailForm) Record() *parks.Trail {
	return &parks.Trail{
		ID:             r.ID,
		Name:           r.Name,
		Distance:       r.Distance,
		Elevation:      r.Elevation,
		Difficulty:     r.Difficulty,
		NationalParkID: r.NationalParkID,
	}
}

func (c *TrailsPageController) UpsertPost(ctx router.Context) error {
	payload := new(TrailForm)
	token, _ := c.Sessions.Token(ctx)

	renderAgain := func(record *parks.Trail, system string, err error) error {
		parkList, listErr := c.Parks.GetAll(ctx.Context(), c.Endpoints.NationalParks(), token)
		if listErr != nil {
			c.Logger.Error("trail upsert parks fetch", "error", listErr)
		}
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": system,
		}).Render(c.Views.Upsert, router.ViewContext{
			"record":       record,
			"parks":        parkList,
			"difficulties": difficulties(),
		})
	}

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("trail upsert parse payload", "error", err)
		return renderAgain(payload.Record(), "Error parsing body", err)
	}

	if err := payload.Validate(); err != nil {
		return renderAgain(payload.Record(), "Error validating payload", err)
	}

	record := payload.Record()

	var err error
	if record.ID == 0 {
		_, err = c.Trails.Create(ctx.Context(), c.Endpoints.Trails(), record, token)
	} else {
		err = c.Trails.Update(ctx.Context(), c.Endpoints.Trails(), record.ID, record, token)
	}

	if err != nil {
		c.Logger.Error("trail upsert save", "error", err)
		return renderAgain(record, "Could not save trail", err)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Trail saved",
	}).Redirect("/trails", router.StatusSeeOther)
}

func (c *TrailsPageController) Delete(ctx router.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id", ""), 10, 64)
	if err != nil {
		return ctx.Redirect("/trails", router.StatusSeeOther)
	}

	token, _ := c.Sessions.Token(ctx)
	if err := c.Trails.Delete(ctx.Context(), c.Endpoints.Trails(), id, token); err != nil {
		c.Logger.Error("trail delete", "id", id, "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"system_message": "Could not delete trail",
		}).Redirect("/trails", router.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "Trail deleted",
	}).Redirect("/trails", router.StatusSeeOther)
}

func difficulties() []string {
	return []string{
		parks.DifficultyEasy,
		parks.DifficultyModerate,
		parks.DifficultyDifficult,
		parks.DifficultyExpert,
	}
}
