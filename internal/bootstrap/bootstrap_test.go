package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clgres/resultapi/internal/config"
	"github.com/clgres/resultapi/internal/seed"
)

func testConfig(driver string) *config.Config {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.RequestTimeout = "2s"
	cfg.Store.Driver = driver
	cfg.Store.Collection = "students"
	cfg.Store.Semesters = "semesters"
	cfg.Grading.CGPAPolicy = config.CGPAPolicyExcludeFailedSubjects
	cfg.Grading.SemesterKeyPrefix = "sem_"
	return cfg
}

func TestSetupStore_MemoryWithDemoData(t *testing.T) {
	cfg := testConfig(config.DriverMemory)
	cfg.Store.SeedDemo = true

	st, err := SetupStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	deps := BuildDependencies(cfg, st, zerolog.Nop())
	defer deps.Close()

	res, err := deps.ResultService.GetStudentResults(context.Background(), seed.DemoRollNo)
	require.NoError(t, err)
	assert.Len(t, res.Results, 3)

	router, err := SetupRouter(cfg, deps, zerolog.Nop())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/results/"+seed.DemoNoProfileRollNo, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Student "+seed.DemoNoProfileRollNo)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestSetupStore_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := testConfig(config.DriverRedis)
	cfg.Redis.Host = mr.Host()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)
	cfg.Redis.Port = port

	st, err := SetupStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)
	defer st.Close()

	deps := BuildDependencies(cfg, st, zerolog.Nop())
	require.NoError(t, deps.Repos.ResultRepository.Ping(context.Background()))
}

func TestSetupStore_RedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(config.DriverRedis)
	cfg.Redis.Host = mr.Host()
	cfg.Redis.Port, _ = strconv.Atoi(mr.Port())
	mr.Close()

	_, err := SetupStore(context.Background(), cfg, zerolog.Nop())
	assert.Error(t, err)
}

func TestSetupStore_UnknownDriver(t *testing.T) {
	_, err := SetupStore(context.Background(), testConfig("mongo"), zerolog.Nop())
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestBuildDependencies_Policy(t *testing.T) {
	cfg := testConfig(config.DriverMemory)
	cfg.Grading.CGPAPolicy = config.CGPAPolicyExcludeFailedSemesters

	st, err := SetupStore(context.Background(), cfg, zerolog.Nop())
	require.NoError(t, err)

	deps := BuildDependencies(cfg, st, zerolog.Nop())
	assert.Equal(t, config.CGPAPolicyExcludeFailedSemesters, string(deps.Aggregator.Policy()))
	assert.NoError(t, deps.Close())
}
