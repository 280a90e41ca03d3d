package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/creature-seeder/internal/errors"
	"github.com/KirkDiggler/creature-seeder/internal/testutils"
)

type SeederCLITestSuite struct {
	suite.Suite
	dir          string
	catalog      *httptest.Server
	store        *httptest.Server
	catalogCalls atomic.Int32
	inserts      atomic.Int32
	deleteStatus atomic.Int32
}

func TestSeederCLISuite(t *testing.T) {
	suite.Run(t, new(SeederCLITestSuite))
}

func (s *SeederCLITestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.catalogCalls.Store(0)
	s.inserts.Store(0)
	s.deleteStatus.Store(http.StatusNoContent)

	s.catalog = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.catalogCalls.Add(1)
		if r.URL.Path == "/pokemon-species" {
			_, _ = w.Write([]byte(`{"count": 20, "results": []}`))
			return
		}
		id, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/pokemon/"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(testutils.CreatureJSON(id, fmt.Sprintf("creature%d", id))))
	}))
	s.T().Cleanup(s.catalog.Close)

	s.store = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var row map[string]any
			if err := json.NewDecoder(r.Body).Decode(&row); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			row["id"] = 100 + s.inserts.Add(1)
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(row)
		case http.MethodDelete:
			w.WriteHeader(int(s.deleteStatus.Load()))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
	s.T().Cleanup(s.store.Close)
}

func (s *SeederCLITestSuite) writeMoves(moves ...string) string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, m := range moves {
		if i > 0 {
			sb.WriteString(",")
		}
		fmt.Fprintf(&sb, `{"name": %q, "power": 40}`, m)
	}
	sb.WriteString("]")

	path := filepath.Join(s.dir, "moves.json")
	s.Require().NoError(os.WriteFile(path, []byte(sb.String()), 0o600))
	return path
}

func (s *SeederCLITestSuite) writeConfig(movesPath string) string {
	body := fmt.Sprintf(`
moves_path: %s
log_level: error
catalog:
  base_url: %s/pokemon
  species_url: %s/pokemon-species
store:
  url: %s/data
reports:
  sqlite_path: %s
`, movesPath, s.catalog.URL, s.catalog.URL, s.store.URL, filepath.Join(s.dir, "reports.db"))

	path := filepath.Join(s.dir, "seeder.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(body), 0o600))
	return path
}

func (s *SeederCLITestSuite) execute(args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func (s *SeederCLITestSuite) TestSeedInsertsAndCleansUp() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember", "Surf", "Bite"))

	out, err := s.execute("seed", "--config", cfgPath, "--seed", "11", "--report-store", "sqlite")

	s.Require().NoError(err)
	s.Equal(int32(8), s.inserts.Load())
	s.Contains(out, "inserted 8/8 (population 20)")
	s.Contains(out, "cleanup: deleted")

	out, err = s.execute("reports", "list", "--config", cfgPath, "--report-store", "sqlite")
	s.Require().NoError(err)
	s.Contains(out, "inserted 8/8")
	s.Contains(out, "cleanup deleted")
}

func (s *SeederCLITestSuite) TestSeedJSONReport() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember", "Surf"))
	s.deleteStatus.Store(http.StatusNotFound)

	out, err := s.execute("seed", "--config", cfgPath, "--count", "3", "--json")
	s.Require().NoError(err)

	var report struct {
		Requested int    `json:"requested"`
		Cleanup   string `json:"cleanup"`
		Results   []struct {
			OK      bool `json:"ok"`
			Payload struct {
				Name   string  `json:"name"`
				Sprite *string `json:"sprite"`
				HP     *int    `json:"hp"`
				Speed  *int    `json:"speed"`
				Moves  string  `json:"moves"`
			} `json:"payload"`
		} `json:"results"`
	}
	s.Require().NoError(json.Unmarshal([]byte(out), &report))
	s.Equal(3, report.Requested)
	s.Equal("already-absent", report.Cleanup)
	s.Require().Len(report.Results, 3)
	for _, res := range report.Results {
		s.True(res.OK)
		s.True(strings.HasPrefix(res.Payload.Name, "Creature"))
		s.Nil(res.Payload.Sprite)
		s.Equal(50, *res.Payload.HP)
		s.Nil(res.Payload.Speed)
		s.Len(strings.Split(res.Payload.Moves, ", "), 4)
	}
}

func (s *SeederCLITestSuite) TestSeedDryRunWritesNothing() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember", "Surf"))

	out, err := s.execute("seed", "--config", cfgPath, "--dry-run")

	s.Require().NoError(err)
	s.Zero(s.inserts.Load())
	s.Contains(out, "cleanup: skipped")
}

func (s *SeederCLITestSuite) TestSeedRejectsSmallCatalogBeforeAnyRequest() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember"))

	_, err := s.execute("seed", "--config", cfgPath)

	s.Require().Error(err)
	s.True(errors.IsConfig(err))
	s.Zero(s.catalogCalls.Load())
	s.Zero(s.inserts.Load())
}

func (s *SeederCLITestSuite) TestSeedFailsWhenCleanupFails() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember", "Surf"))
	s.deleteStatus.Store(http.StatusInternalServerError)

	out, err := s.execute("seed", "--config", cfgPath)

	s.Require().Error(err)
	s.True(errors.IsUpstream(err))
	s.Equal(int32(8), s.inserts.Load())
	s.Contains(out, "cleanup: failed")
}

func (s *SeederCLITestSuite) TestCleanupCommand() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember", "Surf"))
	s.deleteStatus.Store(http.StatusNotFound)

	out, err := s.execute("cleanup", "--config", cfgPath, "--placeholder-id", "7")

	s.Require().NoError(err)
	s.Equal("placeholder 7: already-absent\n", out)
}

func (s *SeederCLITestSuite) TestReportsNeedAStore() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember", "Surf"))

	_, err := s.execute("reports", "list", "--config", cfgPath)

	s.Require().Error(err)
	s.True(errors.IsConfig(err))
}

func (s *SeederCLITestSuite) TestInvalidFlagValue() {
	cfgPath := s.writeConfig(s.writeMoves("Tackle", "Growl", "Ember", "Surf"))

	_, err := s.execute("seed", "--config", cfgPath, "--report-store", "postgres")

	s.Require().Error(err)
	s.True(errors.IsConfig(err))
}
