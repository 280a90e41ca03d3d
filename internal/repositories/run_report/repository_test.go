package runreport_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/creature-seeder/internal/entities"
	"github.com/KirkDiggler/creature-seeder/internal/errors"
	runreport "github.com/KirkDiggler/creature-seeder/internal/repositories/run_report"
	"github.com/KirkDiggler/creature-seeder/internal/testutils"
)

var baseTime = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func newReport(runID string, startedAt time.Time) *runreport.RunReport {
	attack := 55
	return &runreport.RunReport{
		RunID:      runID,
		StartedAt:  startedAt,
		FinishedAt: startedAt.Add(3 * time.Second),
		Population: 1025,
		Requested:  3,
		Results: []runreport.ItemResult{
			{CreatureID: 25, OK: true, RecordID: 10, Payload: &entities.SeedPayload{Name: "Pikachu", Attack: &attack}},
			{CreatureID: 4, OK: true, RecordID: 11, Payload: &entities.SeedPayload{Name: "Charmander"}},
			{CreatureID: 999, Error: "creature lookup failed", ErrorCode: "UPSTREAM"},
		},
		Cleanup: runreport.CleanupDeleted,
	}
}

// repositorySuite runs the same behavior checks against every backend
type repositorySuite struct {
	suite.Suite
	ctx  context.Context
	repo runreport.Repository
}

func (s *repositorySuite) TestSaveAndGet() {
	report := newReport("run_1", baseTime)

	_, err := s.repo.Save(s.ctx, runreport.SaveInput{Report: report})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, runreport.GetInput{RunID: "run_1"})
	s.Require().NoError(err)
	s.Equal("run_1", out.Report.RunID)
	s.True(baseTime.Equal(out.Report.StartedAt))
	s.Equal(2, out.Report.Inserted())
	s.Equal(1, out.Report.Failed())
	s.Equal([]int{999}, out.Report.FailedIDs())
	s.Equal(55, *out.Report.Results[0].Payload.Attack)
	s.Equal(runreport.CleanupDeleted, out.Report.Cleanup)
}

func (s *repositorySuite) TestSaveReplaces() {
	report := newReport("run_1", baseTime)
	_, err := s.repo.Save(s.ctx, runreport.SaveInput{Report: report})
	s.Require().NoError(err)

	report.Cleanup = runreport.CleanupFailed
	report.CleanupError = "status 500"
	_, err = s.repo.Save(s.ctx, runreport.SaveInput{Report: report})
	s.Require().NoError(err)

	out, err := s.repo.Get(s.ctx, runreport.GetInput{RunID: "run_1"})
	s.Require().NoError(err)
	s.Equal(runreport.CleanupFailed, out.Report.Cleanup)

	list, err := s.repo.ListRecent(s.ctx, runreport.ListRecentInput{})
	s.Require().NoError(err)
	s.Len(list.Reports, 1)
}

func (s *repositorySuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, runreport.GetInput{RunID: "missing"})
	s.True(errors.IsNotFound(err))
}

func (s *repositorySuite) TestInvalidInput() {
	_, err := s.repo.Save(s.ctx, runreport.SaveInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Save(s.ctx, runreport.SaveInput{Report: &runreport.RunReport{}})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Get(s.ctx, runreport.GetInput{})
	s.True(errors.IsInvalidArgument(err))
}

func (s *repositorySuite) TestListRecentNewestFirst() {
	for i, id := range []string{"run_a", "run_b", "run_c"} {
		_, err := s.repo.Save(s.ctx, runreport.SaveInput{Report: newReport(id, baseTime.Add(time.Duration(i)*time.Minute))})
		s.Require().NoError(err)
	}

	out, err := s.repo.ListRecent(s.ctx, runreport.ListRecentInput{Limit: 2})
	s.Require().NoError(err)
	s.Require().Len(out.Reports, 2)
	s.Equal("run_c", out.Reports[0].RunID)
	s.Equal("run_b", out.Reports[1].RunID)
}

func (s *repositorySuite) TestListRecentEmpty() {
	out, err := s.repo.ListRecent(s.ctx, runreport.ListRecentInput{})
	s.Require().NoError(err)
	s.Empty(out.Reports)
}

type RedisRepositoryTestSuite struct {
	repositorySuite
	mr *miniredis.Miniredis
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	client, mr := testutils.CreateTestRedisClient(s.T())
	s.mr = mr

	repo, err := runreport.NewRedisRepository(&runreport.RedisConfig{
		Client: client,
		TTL:    time.Hour,
	})
	s.Require().NoError(err)
	s.repo = repo
}

func (s *RedisRepositoryTestSuite) TestReportExpiresAndLeavesIndex() {
	_, err := s.repo.Save(s.ctx, runreport.SaveInput{Report: newReport("run_old", baseTime)})
	s.Require().NoError(err)
	s.Equal(time.Hour, s.mr.TTL("seed_report:run_old"))

	s.mr.FastForward(2 * time.Hour)

	out, err := s.repo.ListRecent(s.ctx, runreport.ListRecentInput{})
	s.Require().NoError(err)
	s.Empty(out.Reports)

	s.False(s.mr.Exists("seed_reports"), "expired run ids are removed from the index")
}

func (s *RedisRepositoryTestSuite) TestNewRedisRepositoryRequiresClient() {
	_, err := runreport.NewRedisRepository(&runreport.RedisConfig{})
	s.True(errors.IsInvalidArgument(err))

	_, err = runreport.NewRedisRepository(nil)
	s.True(errors.IsInvalidArgument(err))
}

type SQLiteRepositoryTestSuite struct {
	repositorySuite
	path string
}

func TestSQLiteRepositorySuite(t *testing.T) {
	suite.Run(t, new(SQLiteRepositoryTestSuite))
}

func (s *SQLiteRepositoryTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.path = filepath.Join(s.T().TempDir(), "reports.db")

	repo, err := runreport.NewSQLiteRepository(s.ctx, &runreport.SQLiteConfig{Path: s.path})
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = repo.Close() })
	s.repo = repo
}

func (s *SQLiteRepositoryTestSuite) TestReportsSurviveReopen() {
	_, err := s.repo.Save(s.ctx, runreport.SaveInput{Report: newReport("run_1", baseTime)})
	s.Require().NoError(err)

	reopened, err := runreport.NewSQLiteRepository(s.ctx, &runreport.SQLiteConfig{Path: s.path})
	s.Require().NoError(err)
	defer func() { _ = reopened.Close() }()

	out, err := reopened.Get(s.ctx, runreport.GetInput{RunID: "run_1"})
	s.Require().NoError(err)
	s.Equal(1025, out.Report.Population)
}

func (s *SQLiteRepositoryTestSuite) TestNewSQLiteRepositoryRequiresPath() {
	_, err := runreport.NewSQLiteRepository(s.ctx, &runreport.SQLiteConfig{})
	s.True(errors.IsInvalidArgument(err))
}

func TestRunReportCounts(t *testing.T) {
	report := &runreport.RunReport{}
	if report.Inserted() != 0 || report.Failed() != 0 || report.FailedIDs() != nil {
		t.Fatalf("empty report should have no counts")
	}
}
