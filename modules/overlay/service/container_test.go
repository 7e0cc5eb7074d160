package service

import (
	"context"
	"testing"
	"time"

	"booker-api/core/cache"
	"booker-api/core/errors"
	authdto "booker-api/modules/auth/dto"
	"booker-api/modules/overlay/dto"

	"github.com/stretchr/testify/require"
)

type loginStub struct {
	returnTo string
}

func (l *loginStub) ContinueWithProviderURL(_ context.Context, returnTo string) (*authdto.ContinueURLResponse, *errors.AppError) {
	l.returnTo = returnTo
	return &authdto.ContinueURLResponse{URL: "https://accounts.example.com/auth?state=s1", State: "s1"}, nil
}

type containerFixture struct {
	cache   *cache.MemoryCache
	querier *querierStub
	login   *loginStub
}

func newContainer(f *containerFixture, session *Session) Container {
	sessions := sessionStub{session: session}
	busy := NewBusyState(f.cache, time.Minute)
	r := NewReconciler(sessions, f.querier, busy, nil, fixedNow, time.UTC)
	c := NewContainer(f.cache, sessions, r, busy, f.login).(*container)
	c.now = fixedNow
	return c
}

func newFixture() *containerFixture {
	return &containerFixture{
		cache:   cache.NewMemoryCache(),
		querier: &querierStub{busy: nineToTen()},
		login:   &loginStub{},
	}
}

func TestContainerLoggedOut(t *testing.T) {
	ctx := context.Background()

	t.Run("shared link forces flag off and prompts once", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, nil)

		view, appErr := c.Render(ctx, "dev", dto.RenderRequest{URL: "/team/sales?month=2024-03&overlayCalendar=true"})
		require.Nil(t, appErr)
		require.False(t, view.SwitchChecked)
		require.True(t, view.ContinuePromptOpen)
		require.Equal(t, "/team/sales?month=2024-03", view.ReplaceURL)
		require.Equal(t, "https://accounts.example.com/auth?state=s1", view.ContinueURL)
		require.Equal(t, "/team/sales?month=2024-03&overlayCalendar=true", f.login.returnTo)
		require.False(t, view.ShowSettingsButton)

		// the replaced URL renders without another navigation
		view, appErr = c.Render(ctx, "dev", dto.RenderRequest{URL: view.ReplaceURL})
		require.Nil(t, appErr)
		require.True(t, view.ContinuePromptOpen)
		require.Empty(t, view.ReplaceURL)

		require.Nil(t, c.DismissPrompt(ctx, "dev"))
		view, _ = c.Render(ctx, "dev", dto.RenderRequest{URL: "/team/sales?month=2024-03"})
		require.False(t, view.ContinuePromptOpen)
		require.Empty(t, view.ContinueURL)
		require.Zero(t, f.querier.calls())
	})

	t.Run("switch only opens the prompt", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, nil)

		view, appErr := c.Toggle(ctx, "dev", dto.ToggleRequest{RenderRequest: dto.RenderRequest{URL: "/team/sales"}, State: true})
		require.Nil(t, appErr)
		require.True(t, view.ContinuePromptOpen)
		require.False(t, view.SwitchChecked)
		require.Empty(t, view.ReplaceURL)

		view, _ = c.Toggle(ctx, "dev", dto.ToggleRequest{RenderRequest: dto.RenderRequest{URL: "/team/sales"}, State: false})
		require.False(t, view.ContinuePromptOpen)
	})

	t.Run("settings need a session", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, nil)

		view, appErr := c.SetSettingsOpen(ctx, "dev", dto.SettingsRequest{RenderRequest: dto.RenderRequest{URL: "/x"}, Open: true})
		require.Nil(t, appErr)
		require.False(t, view.SettingsOpen)
	})
}

func TestContainerLoggedIn(t *testing.T) {
	ctx := context.Background()
	session := &Session{UserID: 7}

	t.Run("toggle rewrites the URL and loads busy times", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, session)

		_, appErr := c.AddSelection(ctx, "dev", dto.SelectionRequest{CredentialID: 1, ExternalID: "a@example.com"})
		require.Nil(t, appErr)

		view, appErr := c.Toggle(ctx, "dev", dto.ToggleRequest{
			RenderRequest: dto.RenderRequest{URL: "/team/sales?month=2024-03", SelectedDate: "2024-03-10", Timezone: "Asia/Kolkata", Layout: "week_view"},
			State:         true,
		})
		require.Nil(t, appErr)
		require.True(t, view.SwitchChecked)
		require.Equal(t, "/team/sales?month=2024-03&overlayCalendar=true", view.ReplaceURL)
		require.Equal(t, "lg", view.SwitchVisibleFrom)
		require.True(t, view.ShowSettingsButton)
		require.False(t, view.ContinuePromptOpen)
		require.Len(t, view.BusyDates, 1)
		require.Equal(t, 14, view.BusyDates[0].Start.UTC().Hour())

		require.Equal(t, "2024-03-10", f.querier.requests[0].DateFrom)
		require.Equal(t, "2024-03-10", f.querier.requests[0].DateTo)
		require.Equal(t, "Asia/Kolkata", f.querier.requests[0].LoggedInUsersTz)

		view, _ = c.Toggle(ctx, "dev", dto.ToggleRequest{
			RenderRequest: dto.RenderRequest{URL: view.ReplaceURL, SelectedDate: "2024-03-10"},
			State:         false,
		})
		require.False(t, view.SwitchChecked)
		require.Equal(t, "/team/sales?month=2024-03", view.ReplaceURL)
		require.Equal(t, "md", view.SwitchVisibleFrom)
		require.Empty(t, view.BusyDates)
		require.NotNil(t, view.BusyDates)
		require.Equal(t, 1, f.querier.calls())
	})

	t.Run("missing date defaults to today in viewer zone", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, session)
		_, _ = c.AddSelection(ctx, "dev", dto.SelectionRequest{CredentialID: 1, ExternalID: "a@example.com"})

		_, appErr := c.Render(ctx, "dev", dto.RenderRequest{URL: "/x?overlayCalendar=true", Timezone: "Pacific/Kiritimati"})
		require.Nil(t, appErr)
		require.Equal(t, "2024-03-11", f.querier.requests[0].DateFrom)
	})

	t.Run("query failure empties selection", func(t *testing.T) {
		f := newFixture()
		f.querier.err = errors.New("revoked")
		c := newContainer(f, session)
		_, _ = c.AddSelection(ctx, "dev", dto.SelectionRequest{CredentialID: 1, ExternalID: "a@example.com"})

		view, appErr := c.Render(ctx, "dev", dto.RenderRequest{URL: "/x?overlayCalendar=true", SelectedDate: "2024-03-10"})
		require.Nil(t, appErr)
		require.Empty(t, view.Selection)
		require.Empty(t, view.BusyDates)

		items, appErr := c.ListSelection(ctx, "dev")
		require.Nil(t, appErr)
		require.Empty(t, items)
	})

	t.Run("selection management", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, session)
		a := dto.SelectionRequest{CredentialID: 1, ExternalID: "a@example.com"}
		b := dto.SelectionRequest{CredentialID: 2, ExternalID: "b@example.com"}

		_, _ = c.AddSelection(ctx, "dev", a)
		items, _ := c.AddSelection(ctx, "dev", b)
		require.Equal(t, []dto.SelectionRequest{a, b}, items)

		items, _ = c.AddSelection(ctx, "dev", a)
		require.Len(t, items, 2)

		items, _ = c.RemoveSelection(ctx, "dev", a)
		require.Equal(t, []dto.SelectionRequest{b}, items)

		_, appErr := c.RemoveSelection(ctx, "dev", a)
		require.NotNil(t, appErr)
		require.Equal(t, errors.ErrNotFound, appErr.Code)

		require.Nil(t, c.ClearSelection(ctx, "dev"))
		items, _ = c.ListSelection(ctx, "dev")
		require.Empty(t, items)

		_, appErr = c.AddSelection(ctx, "dev", dto.SelectionRequest{CredentialID: 1})
		require.NotNil(t, appErr)
		require.Equal(t, errors.ErrInvalidInput, appErr.Code)
	})

	t.Run("selection change drops busy state", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, session)
		busy := NewBusyState(f.cache, time.Minute)
		_, _ = c.AddSelection(ctx, "dev", dto.SelectionRequest{CredentialID: 1, ExternalID: "a@example.com"})

		_, appErr := c.Render(ctx, "dev", dto.RenderRequest{URL: "/x?overlayCalendar=true", SelectedDate: "2024-03-10"})
		require.Nil(t, appErr)
		stored, err := busy.Get(ctx, "dev")
		require.NoError(t, err)
		require.Len(t, stored, 1)

		_, appErr = c.AddSelection(ctx, "dev", dto.SelectionRequest{CredentialID: 2, ExternalID: "b@example.com"})
		require.Nil(t, appErr)
		stored, err = busy.Get(ctx, "dev")
		require.NoError(t, err)
		require.Nil(t, stored)
	})

	t.Run("settings surface", func(t *testing.T) {
		f := newFixture()
		c := newContainer(f, session)

		view, appErr := c.SetSettingsOpen(ctx, "dev", dto.SettingsRequest{RenderRequest: dto.RenderRequest{URL: "/x"}, Open: true})
		require.Nil(t, appErr)
		require.True(t, view.SettingsOpen)

		view, _ = c.Render(ctx, "dev", dto.RenderRequest{URL: "/x"})
		require.True(t, view.SettingsOpen)

		view, _ = c.SetSettingsOpen(ctx, "dev", dto.SettingsRequest{RenderRequest: dto.RenderRequest{URL: "/x"}, Open: false})
		require.False(t, view.SettingsOpen)
	})

	t.Run("session closes a pending prompt", func(t *testing.T) {
		f := newFixture()
		_, _ = newContainer(f, nil).Render(ctx, "dev", dto.RenderRequest{URL: "/x?overlayCalendar=true"})

		view, appErr := newContainer(f, session).Render(ctx, "dev", dto.RenderRequest{URL: "/x?overlayCalendar=true", SelectedDate: "2024-03-10"})
		require.Nil(t, appErr)
		require.False(t, view.ContinuePromptOpen)
		require.True(t, view.SwitchChecked)
	})
}
