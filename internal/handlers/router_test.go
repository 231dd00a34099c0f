package handlers

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SAP-F-2025/classroom-intro-service/internal/events"
	"github.com/SAP-F-2025/classroom-intro-service/internal/models"
	pgrepo "github.com/SAP-F-2025/classroom-intro-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/classroom-intro-service/internal/services"
	"github.com/SAP-F-2025/classroom-intro-service/internal/sessions"
	"github.com/SAP-F-2025/classroom-intro-service/internal/validator"
)

// newTestServer stands up the full HTTP surface against an in-memory
// database and Redis, the same wiring main performs.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := pgrepo.NewPostgreSQLRepository(pgrepo.RepositoryConfig{
		DB:          db,
		RedisClient: redisClient,
	})
	store := sessions.NewStore(redisClient, time.Hour)
	v := validator.New()
	sm := services.NewServiceManager(db, repo, logger, v, events.NewMockEventPublisher(logger))

	router := gin.New()
	SetupMiddleware(router)
	router.LoadHTMLGlob("../../templates/*.html")
	NewHandlerManager(sm, store, v, logger).SetupRoutes(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to build cookie jar: %v", err)
	}
	client := &http.Client{Jar: jar}

	return server, client
}

func postForm(t *testing.T, client *http.Client, serverURL, path string, form url.Values) (*http.Response, string) {
	t.Helper()

	resp, err := client.PostForm(serverURL+path, form)
	if err != nil {
		t.Fatalf("POST %s failed: %v", path, err)
	}
	body := readBody(t, resp)
	return resp, body
}

func get(t *testing.T, client *http.Client, serverURL, path string) (*http.Response, string) {
	t.Helper()

	resp, err := client.Get(serverURL + path)
	if err != nil {
		t.Fatalf("GET %s failed: %v", path, err)
	}
	body := readBody(t, resp)
	return resp, body
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	return string(data)
}

var joinCodeInBody = regexp.MustCompile(`class="join-code">([A-Z0-9]{8})<`)

func TestFullClassroomFlow(t *testing.T) {
	server, teacherClient := newTestServer(t)

	// Teacher registers through the combined auth form.
	resp, body := postForm(t, teacherClient, server.URL, "/auth", url.Values{
		"email":    {"rivera@example.com"},
		"password": {"teach-pass"},
		"name":     {"Ms. Rivera"},
		"role":     {"teacher"},
	})
	if resp.Request.URL.Path != "/dashboard" {
		t.Fatalf("expected redirect to /dashboard, landed on %s", resp.Request.URL.Path)
	}
	if !strings.Contains(body, "Ms. Rivera") {
		t.Fatal("dashboard does not greet the teacher")
	}

	// Teacher creates a course and the dashboard shows the join code.
	resp, body = postForm(t, teacherClient, server.URL, "/courses", url.Values{
		"course_name": {"Intro to CS"},
	})
	if !strings.Contains(body, "Intro to CS") {
		t.Fatal("created course missing from dashboard")
	}
	m := joinCodeInBody.FindStringSubmatch(body)
	if m == nil {
		t.Fatalf("no join code rendered on dashboard:\n%s", body)
	}
	joinCode := m[1]

	// Student registers with their own client and session.
	jar, _ := cookiejar.New(nil)
	studentClient := &http.Client{Jar: jar}
	resp, _ = postForm(t, studentClient, server.URL, "/auth", url.Values{
		"email":    {"sam@example.com"},
		"password": {"learn-pass"},
		"name":     {"Sam Chen"},
		"role":     {"student"},
	})
	if resp.Request.URL.Path != "/dashboard" {
		t.Fatalf("student registration landed on %s", resp.Request.URL.Path)
	}

	// Student joins with a lowercase copy of the code.
	_, body = postForm(t, studentClient, server.URL, "/courses/join", url.Values{
		"join_code": {strings.ToLower(joinCode)},
	})
	if !strings.Contains(body, "Intro to CS") {
		t.Fatal("joined course missing from student dashboard")
	}

	// Joining again is rejected politely.
	_, body = postForm(t, studentClient, server.URL, "/courses/join", url.Values{
		"join_code": {joinCode},
	})
	if !strings.Contains(body, "already enrolled") {
		t.Fatal("repeat join did not surface the already-enrolled message")
	}

	// The course id is the first one created.
	profilePath := "/courses/1/profile"

	_, body = get(t, studentClient, server.URL, profilePath)
	if !strings.Contains(body, "My intro for Intro to CS") {
		t.Fatal("profile form did not render")
	}

	_, body = postForm(t, studentClient, server.URL, profilePath, url.Values{
		"preferred_name": {"Sam"},
		"pronouns":       {"they/them"},
		"major":          {"Computer Science"},
		"goals":          {"Build things"},
	})
	if !strings.Contains(body, "saved") {
		t.Fatal("profile save did not confirm")
	}

	// Students cannot open the teacher's roster view.
	resp, _ = get(t, studentClient, server.URL, "/courses/1/profiles")
	if resp.Request.URL.Path != "/dashboard" {
		t.Fatalf("student reached %s, expected bounce to /dashboard", resp.Request.URL.Path)
	}

	// Teacher browses and searches the submitted intros.
	_, body = get(t, teacherClient, server.URL, "/courses/1/profiles")
	if !strings.Contains(body, "Sam Chen") || !strings.Contains(body, "they/them") {
		t.Fatal("roster view missing the student's intro")
	}

	_, body = get(t, teacherClient, server.URL, "/courses/1/profiles?search=computer")
	if !strings.Contains(body, "Sam Chen") {
		t.Fatal("case-insensitive search missed the intro")
	}

	_, body = get(t, teacherClient, server.URL, "/courses/1/profiles?search=astronomy")
	if strings.Contains(body, "Sam Chen") {
		t.Fatal("search returned a non-matching intro")
	}

	// Roster export streams a workbook.
	resp, _ = get(t, teacherClient, server.URL, "/courses/1/profiles/export")
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("unexpected export content type %q", ct)
	}
}

func TestAnonymousRedirects(t *testing.T) {
	server, client := newTestServer(t)

	resp, _ := get(t, client, server.URL, "/dashboard")
	if resp.Request.URL.Path != "/login" {
		t.Errorf("anonymous /dashboard landed on %s, want /login", resp.Request.URL.Path)
	}

	resp, _ = get(t, client, server.URL, "/courses/1/profile")
	if resp.Request.URL.Path != "/login" {
		t.Errorf("anonymous profile page landed on %s, want /login", resp.Request.URL.Path)
	}
}

func TestLoginRejectsBadPassword(t *testing.T) {
	server, client := newTestServer(t)

	postForm(t, client, server.URL, "/auth", url.Values{
		"email":    {"rivera@example.com"},
		"password": {"teach-pass"},
		"name":     {"Ms. Rivera"},
		"role":     {"teacher"},
	})
	postForm(t, client, server.URL, "/logout", url.Values{})

	// Login-only attempt with the wrong password stays on the login page.
	resp, body := postForm(t, client, server.URL, "/auth", url.Values{
		"email":    {"rivera@example.com"},
		"password": {"wrong"},
	})
	if resp.Request.URL.Path != "/auth" {
		t.Fatalf("failed login landed on %s", resp.Request.URL.Path)
	}
	if !strings.Contains(body, "Invalid email or password") {
		t.Fatal("failed login did not surface an error message")
	}

	// Registering again with a taken email and wrong password fails the
	// same way instead of leaking that the account exists.
	_, body = postForm(t, client, server.URL, "/auth", url.Values{
		"email":    {"rivera@example.com"},
		"password": {"wrong"},
		"name":     {"Impostor"},
		"role":     {"teacher"},
	})
	if !strings.Contains(body, "Invalid email or password") {
		t.Fatal("duplicate registration did not surface a login error")
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, client := newTestServer(t)

	resp, body := get(t, client, server.URL, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health returned %d", resp.StatusCode)
	}
	if !strings.Contains(body, "healthy") {
		t.Fatalf("unexpected health body: %s", body)
	}
}
