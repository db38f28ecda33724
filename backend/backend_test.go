package backend_test

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yjkwon/cinefeed/backend"
	"github.com/yjkwon/cinefeed/client"
	"github.com/yjkwon/cinefeed/credstore"
	"github.com/yjkwon/cinefeed/session"
)

type fixture struct {
	srv    *httptest.Server
	client *client.Client
	store  credstore.Store
	bus    *session.Bus
	events *[]session.ExpiredEvent
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	b := backend.New()
	b.SeedCatalog()
	_, err := b.AddUser("admin@cinefeed.local", "admin-pass-1", "admin", "ADMIN")
	require.NoError(t, err)
	_, err = b.AddUser("user@cinefeed.local", "user-pass-1", "viewer", "USER")
	require.NoError(t, err)

	srv := httptest.NewServer(b.Router())
	t.Cleanup(srv.Close)

	store := credstore.NewMemory()
	bus := session.NewBus()
	var events []session.ExpiredEvent
	bus.Subscribe(func(ev session.ExpiredEvent) { events = append(events, ev) })

	c := client.New(srv.URL, client.WithStore(store), client.WithBus(bus))
	return &fixture{srv: srv, client: c, store: store, bus: bus, events: &events}
}

func (f *fixture) login(t *testing.T, email, password string) {
	t.Helper()
	_, err := f.client.Login(context.Background(), email, password)
	require.NoError(t, err)
}

func TestRegisterLoginAndProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	exists, err := f.client.CheckEmail(ctx, "new@cinefeed.local")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = f.client.Register(ctx, client.Registration{
		Email:    "new@cinefeed.local",
		Password: "long-enough-pw",
		Nickname: "newbie",
	})
	require.NoError(t, err)

	exists, err = f.client.CheckEmail(ctx, "new@cinefeed.local")
	require.NoError(t, err)
	assert.True(t, exists)

	// Duplicate registration is a business failure, not an auth failure.
	_, err = f.client.Register(ctx, client.Registration{
		Email:    "new@cinefeed.local",
		Password: "long-enough-pw",
		Nickname: "other",
	})
	assert.True(t, client.IsStatus(err, http.StatusConflict))
	assert.Empty(t, *f.events, "conflict on exempt path must not broadcast")

	f.login(t, "new@cinefeed.local", "long-enough-pw")
	me, err := f.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "newbie", me.Nickname)
	assert.Equal(t, "USER", me.Role)

	require.NoError(t, f.client.UpdateNickname(ctx, "renamed"))
	me, err = f.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "renamed", me.Nickname)
	nick, _ := f.store.Nickname()
	assert.Equal(t, "renamed", nick)
}

func TestWrongLoginIsNotExpiry(t *testing.T) {
	f := newFixture(t)

	_, err := f.client.Login(context.Background(), "user@cinefeed.local", "wrong")
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
	assert.Empty(t, *f.events, "401 on /login is exempt from expiry classification")
}

func TestCatalogBrowsing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	trending, err := f.client.Trending(ctx, 3)
	require.NoError(t, err)
	require.Len(t, trending, 3)
	assert.Equal(t, "Squid Game", trending[0].Title)

	top, err := f.client.TopRated(ctx, 1)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Crash Landing on You", top[0].Title)

	page, err := f.client.SearchContents(ctx, client.SearchParams{Genre: "Thriller", Sort: "rating", Direction: "desc"})
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)
	assert.Equal(t, "Parasite", page.Content[0].Title)
	for _, c := range page.Content {
		assert.Contains(t, c.Genres, "thriller")
	}

	genres, err := f.client.Genres(ctx)
	require.NoError(t, err)
	assert.Contains(t, genres, "thriller")
	assert.Contains(t, genres, "romance")
}

func TestFeedAndInteractions(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "user@cinefeed.local", "user-pass-1")

	feed, err := f.client.ForYou(ctx, 5)
	require.NoError(t, err)
	require.Len(t, feed, 5)
	for _, rec := range feed {
		assert.NotZero(t, rec.LogID)
		assert.NotEmpty(t, rec.Source)
	}

	explained, err := f.client.ForYouWithReasons(ctx, 2)
	require.NoError(t, err)
	require.Len(t, explained, 2)
	assert.NotEmpty(t, explained[0].Reason)

	require.NoError(t, f.client.ReportClick(ctx, feed[0].LogID))

	target := feed[0].Content.ID
	require.NoError(t, f.client.RecordView(ctx, target))
	require.NoError(t, f.client.Like(ctx, target))

	state, err := f.client.Interactions(ctx, target)
	require.NoError(t, err)
	assert.True(t, state.Viewed)
	assert.True(t, state.Liked)

	// Dislike flips the like off.
	require.NoError(t, f.client.Dislike(ctx, target))
	state, err = f.client.Interactions(ctx, target)
	require.NoError(t, err)
	assert.False(t, state.Liked)
	assert.True(t, state.Disliked)

	// A viewed content drops out of subsequent feeds.
	feed2, err := f.client.ForYou(ctx, 50)
	require.NoError(t, err)
	for _, rec := range feed2 {
		assert.NotEqual(t, target, rec.Content.ID)
	}
}

func TestAdminContentCRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "admin@cinefeed.local", "admin-pass-1")

	created, err := f.client.CreateContent(ctx, client.Content{
		Type:        "MOVIE",
		Title:       "Decision to Leave",
		Genres:      "mystery,romance",
		ReleaseDate: "2022-06-29",
		Rating:      7.3,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	created.Rating = 7.8
	updated, err := f.client.UpdateContent(ctx, created.ID, *created)
	require.NoError(t, err)
	assert.Equal(t, 7.8, updated.Rating)

	page, err := f.client.AdminContents(ctx, client.SearchParams{Query: "decision"})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, created.ID, page.Content[0].ID)

	require.NoError(t, f.client.DeleteContent(ctx, created.ID))
	_, err = f.client.AdminContent(ctx, created.ID)
	assert.True(t, client.IsStatus(err, http.StatusNotFound))
}

func TestAdminDashboards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Generate impressions and one click as a regular user.
	f.login(t, "user@cinefeed.local", "user-pass-1")
	feed, err := f.client.ForYou(ctx, 4)
	require.NoError(t, err)
	require.NotEmpty(t, feed)
	require.NoError(t, f.client.ReportClick(ctx, feed[0].LogID))

	f.login(t, "admin@cinefeed.local", "admin-pass-1")

	dash, err := f.client.RecommendDashboard(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(4), dash.Impressions)
	assert.Equal(t, int64(1), dash.Clicks)
	assert.InDelta(t, 0.25, dash.CTR, 1e-9)
	require.Len(t, dash.Daily, 1)

	stats, err := f.client.RecommendStatsBySource(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, stats)

	clicked := true
	logs, err := f.client.RecommendLogs(ctx, client.RecommendLogParams{Days: 7, Clicked: &clicked})
	require.NoError(t, err)
	require.Len(t, logs.Content, 1)
	assert.Equal(t, feed[0].LogID, logs.Content[0].ID)
}

func TestExpiryScenarioEndToEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Watcher mounted at the composition root.
	nav := &recordingNavigator{}
	w := session.NewWatcher(f.bus, nav)
	w.Start()
	defer w.Stop()

	// A stale token: the backend rejects it with 401 on a non-exempt path.
	require.NoError(t, f.store.SetSession("stale-token", "USER", "ghost"))

	_, err := f.client.Me(ctx)
	require.Error(t, err)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized),
		"the original caller still sees the rejection")

	_, ok := f.store.Token()
	assert.False(t, ok, "token purged")
	_, ok = f.store.Role()
	assert.False(t, ok, "cached role purged")

	require.Len(t, *f.events, 1)
	assert.Equal(t, http.StatusUnauthorized, (*f.events)[0].Status)

	require.Len(t, nav.paths, 1)
	assert.Equal(t, session.LoginPath, nav.paths[0])
	assert.Equal(t, client.ExpiredMessage, nav.messages[0])
}

func TestAdminRouteForbiddenTriggersExpiry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "user@cinefeed.local", "user-pass-1")

	// A valid but non-admin session: 403 on a non-exempt path is
	// classified as expiry by the client-side policy.
	_, err := f.client.RecommendDashboard(ctx, 7)
	assert.True(t, client.IsStatus(err, http.StatusForbidden))

	_, ok := f.store.Token()
	assert.False(t, ok)
	require.Len(t, *f.events, 1)
	assert.Equal(t, http.StatusForbidden, (*f.events)[0].Status)
}

func TestGuardAgainstLiveBackend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Admin-gated guard over a real role check.
	f.login(t, "admin@cinefeed.local", "admin-pass-1")
	g := session.NewGuard(f.store, f.client, session.RequireAdmin())
	assert.Equal(t, session.Allowed, g.Evaluate(ctx))

	// Ordinary user: denied to home, session kept.
	f.login(t, "user@cinefeed.local", "user-pass-1")
	g = session.NewGuard(f.store, f.client, session.RequireAdmin())
	assert.Equal(t, session.DeniedToHome, g.Evaluate(ctx))
	_, ok := f.store.Token()
	assert.True(t, ok)

	// Stale token: the verification call is rejected, the guard clears
	// the credential and denies to login.
	require.NoError(t, f.store.SetSession("stale", "ADMIN", "x"))
	g = session.NewGuard(f.store, f.client, session.RequireAdmin())
	assert.Equal(t, session.DeniedToLogin, g.Evaluate(ctx))
	_, ok = f.store.Token()
	assert.False(t, ok)
}

func TestProfileImageLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "user@cinefeed.local", "user-pass-1")

	url, err := f.client.UploadProfileImage(ctx, "avatar.png", imageReader())
	require.NoError(t, err)
	require.NotEmpty(t, url)

	me, err := f.client.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, url, me.ProfileImageURL)

	// The hosted URL is publicly fetchable.
	resp, err := http.Get(f.srv.URL + url)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, f.client.DeleteProfileImage(ctx))
	me, err = f.client.Me(ctx)
	require.NoError(t, err)
	assert.Empty(t, me.ProfileImageURL)
}

func TestAccountDeletionInvalidatesToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.login(t, "user@cinefeed.local", "user-pass-1")

	tok, _ := f.store.Token()
	require.NoError(t, f.client.DeleteAccount(ctx))

	// The old token is dead server-side as well.
	require.NoError(t, f.store.SetSession(tok, "USER", ""))
	_, err := f.client.Me(ctx)
	assert.True(t, client.IsStatus(err, http.StatusUnauthorized))
}

func imageReader() io.Reader {
	return bytes.NewReader([]byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a, 0x1a, 0x0a})
}

type recordingNavigator struct {
	paths    []string
	messages []string
}

func (n *recordingNavigator) Replace(path, message string) {
	n.paths = append(n.paths, path)
	n.messages = append(n.messages, message)
}
