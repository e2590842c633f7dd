package webapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	parks "github.com/goliatone/go-parks"
	"github.com/goliatone/go-parks/client"
	"github.com/goliatone/go-parks/webapp"
)

func newHomeController(baseURL string) (*webapp.HomeController, *webapp.SessionManager) {
	sessions := webapp.NewSessionManager(testHashKey, testBlockKey)
	ctrl := webapp.NewHomeController(
		webapp.WithHomeEndpoints(webapp.Endpoints{BaseURL: baseURL}),
		webapp.WithHomeSessions(sessions),
		webapp.WithHomeAccount(client.NewAccount()),
	)
	return ctrl, sessions
}

func TestLoginShowRendersForm(t *testing.T) {
	ctrl, _ := newHomeController("http://unused")

	ctx := router.NewMockContext()
	ctx.On("Render", "auth/login", mock.Anything).Return(nil)

	require.NoError(t, ctrl.LoginShow(ctx))
	ctx.AssertExpectations(t)
}

func TestLoginPostRejectedKeepsUsernameOnly(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string][]string{"errors": {"username or password is incorrect"}})
	}))
	defer srv.Close()

	ctrl, _ := newHomeController(srv.URL)

	ctx := router.NewMockContext()
	ctx.On("Context").Return(context.Background())
	ctx.On("Bind", mock.Anything).Run(func(args mock.Arguments) {
		payload := args.Get(0).(*webapp.LoginForm)
		payload.Username = "ranger"
		payload.Password = "wrong"
	}).Return(nil)

	var view router.ViewContext
	ctx.On("Render", "auth/login", mock.Anything).Run(func(args mock.Arguments) {
		view = args.Get(1).(router.ViewContext)
	}).Return(nil)

	require.NoError(t, ctrl.LoginPost(ctx))

	// the form keeps the username, never the password, and blames neither
	record, ok := view["record"].(webapp.LoginForm)
	require.True(t, ok)
	require.Equal(t, "ranger", record.Username)
	require.Empty(t, record.Password)

	errorsMap, ok := view["errors"].(map[string]string)
	require.True(t, ok)
	require.Equal(t, "Invalid username or password", errorsMap["authentication"])
}

func TestLoginPostValidationFailure(t *testing.T) {
	ctrl, _ := newHomeController("http://unused")

	ctx := router.NewMockContext()
	ctx.On("Bind", mock.Anything).Return(nil)

	var view router.ViewContext
	ctx.On("Render", "auth/login", mock.Anything).Run(func(args mock.Arguments) {
		view = args.Get(1).(router.ViewContext)
	}).Return(nil)

	require.NoError(t, ctrl.LoginPost(ctx))
	require.Contains(t, view, "validation")
}

func TestLogoutBlanksSessionToken(t *testing.T) {
	ctrl, sessions := newHomeController("http://unused")

	ctx := router.NewMockContext()
	cookieRecorder(ctx)
	require.NoError(t, sessions.Establish(ctx, webapp.Principal{
		Name: "ranger",
		Role: parks.RoleAdmin,
	}, "signed.jwt.token"))

	ctx.On("Redirect", "/", []int{router.StatusSeeOther}).Return(nil)

	require.NoError(t, ctrl.Logout(ctx))

	token, err := sessions.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}
