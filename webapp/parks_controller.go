package webapp

import (
	"encoding/base64"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/goliatone/go-router"
	"github.com/goliatone/go-router/flash"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/client"
)

// ParksPageController serves the park management pages
type ParksPageController struct {
	Logger    parks.Logger
	Endpoints Endpoints
	Sessions  *SessionManager
	Parks     *client.Repository[parks.NationalPark]
	Views     *ParksPageViews
}

type ParksPageViews struct {
	Index  string
	Upsert string
}

func NewParksPageController(sessions *SessionManager, endpoints Endpoints, logger parks.Logger) *ParksPageController {
	return &ParksPageController{
		Logger:    logger,
		Endpoints: endpoints,
		Sessions:  sessions,
		Parks:     client.NewRepository[parks.NationalPark](),
		Views: &ParksPageViews{
			Index:  "parks/index",
			Upsert: "parks/upsert",
		},
	}
}

func (c *ParksPageController) Index(ctx router.Context) error {
	principal, _ := c.Sessions.Principal(ctx)
	return ctx.Render(c.Views.Index, router.ViewContext{
		"principal": principal,
	})
}

// Data feeds the park table
func (c *ParksPageController) Data(ctx router.Context) error {
	token, _ := c.Sessions.Token(ctx)

	records, err := c.Parks.GetAll(ctx.Context(), c.Endpoints.NationalParks(), token)
	if err != nil {
		c.Logger.Error("parks data fetch", "error", err)
		records = []parks.NationalPark{}
	}

	return ctx.JSON(router.StatusOK, map[string]any{
		"data": records,
	})
}

func (c *ParksPageController) UpsertShow(ctx router.Context) error {
	principal, _ := c.Sessions.Principal(ctx)
	raw := ctx.Param("id", "")
	if raw == "" {
		return ctx.Render(c.Views.Upsert, router.ViewContext{
			"record":    &parks.NationalPark{},
			"principal": principal,
		})
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return ctx.Redirect("/parks", router.StatusSeeOther)
	}

	token, _ := c.Sessions.Token(ctx)
	record, err := c.Parks.Get(ctx.Context(), c.Endpoints.NationalParks(), id, token)
	if err != nil {
		c.Logger.Error("park upsert fetch", "id", id, "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"system_message": "Could not load national park",
		}).Redirect("/parks", router.StatusSeeOther)
	}

	return ctx.Render(c.Views.Upsert, router.ViewContext{
		"record":    record,
		"principal": principal,
	})
}

// ParkForm is the upsert payload. Picture arrives base64-encoded from the
// form; an empty value on update means "keep the stored picture".
type ParkForm struct {
	ID          int64  `form:"id" json:"id"`
	Name        string `form:"name" json:"name"`
	State       string `form:"state" json:"state"`
	Picture     string `form:"picture" json:"picture"`
	Established string `form:"established" json:"established"`
}

// Validate will run validation rules
func (r ParkForm) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&r.State, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Established, validation.Date("2006-01-02")),
	)
}

// Record maps the form onto a model record
func (r ParkForm) Record() *parks.NationalPark {
	record := &parks.NationalPark{
		ID:    r.ID,
		Name:  r.Name,
		State: r.State,
	}

	if r.Picture != "" {
		if raw, err := base64.StdEncoding.DecodeString(r.Picture); err == nil {
			record.Picture = raw
		}
	}

	if r.Established != "" {
		if ts, err := time.Parse("2006-01-02", r.Established); err == nil {
			record.Established = ts
		}
	}

	return record
}

func (c *ParksPageController) UpsertPost(ctx router.Context) error {
	payload := new(ParkForm)

	if err := ctx.Bind(payload); err != nil {
		c.Logger.Error("park upsert parse payload", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error parsing body",
		}).Status(router.StatusBadRequest).Render(c.Views.Upsert, router.ViewContext{
			"record": payload.Record(),
		})
	}

	if err := payload.Validate(); err != nil {
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Error validating payload",
		}).Render(c.Views.Upsert, router.ViewContext{
			"record":     payload.Record(),
			"validation": err.Error(),
		})
	}

	token, _ := c.Sessions.Token(ctx)
	record := payload.Record()

	var err error
	if record.ID == 0 {
		_, err = c.Parks.Create(ctx.Context(), c.Endpoints.NationalParks(), record, token)
	} else {
		// Keep the stored picture when the form carried none. The read and
		// the write are separate requests; a concurrent picture change in
		// between is lost.
		if len(record.Picture) == 0 {
			if current, getErr := c.Parks.Get(ctx.Context(), c.Endpoints.NationalParks(), record.ID, token); getErr == nil {
				record.Picture = current.Picture
			}
		}
		err = c.Parks.Update(ctx.Context(), c.Endpoints.NationalParks(), record.ID, record, token)
	}

	if err != nil {
		c.Logger.Error("park upsert save", "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"error_message":  err.Error(),
			"system_message": "Could not save national park",
		}).Render(c.Views.Upsert, router.ViewContext{
			"record": record,
		})
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "National park saved",
	}).Redirect("/parks", router.StatusSeeOther)
}

func (c *ParksPageController) Delete(ctx router.Context) error {
	id, err := strconv.ParseInt(ctx.Param("id", ""), 10, 64)
	if err != nil {
		return ctx.Redirect("/parks", router.StatusSeeOther)
	}

	token, _ := c.Sessions.Token(ctx)
	if err := c.Parks.Delete(ctx.Context(), c.Endpoints.NationalParks(), id, token); err != nil {
		c.Logger.Error("park delete", "id", id, "error", err)
		return flash.WithError(ctx, router.ViewContext{
			"system_message": "Could not delete national park",
		}).Redirect("/parks", router.StatusSeeOther)
	}

	return flash.WithSuccess(ctx, router.ViewContext{
		"system_message": "National park deleted",
	}).Redirect("/parks", router.StatusSeeOther)
}
