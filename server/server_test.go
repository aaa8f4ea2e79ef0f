package server_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/suite"

	"pkg.world.dev/world-engine/sprite/arena"
	"pkg.world.dev/world-engine/sprite/entity"
	"pkg.world.dev/world-engine/sprite/server"
	"pkg.world.dev/world-engine/sprite/server/handler"
	"pkg.world.dev/world-engine/sprite/sim"
	"pkg.world.dev/world-engine/sprite/types"
)

type ServerTestSuite struct {
	suite.Suite

	w   *sim.World
	app *fiber.App
}

func TestServer(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}

func (s *ServerTestSuite) SetupTest() {
	w, err := sim.New(sim.WithArenaOptions(arena.WithCapacity(16), arena.WithMiscLimit(4), arena.WithGrid(8, 32)))
	s.Require().NoError(err)
	s.w = w

	s.Require().NoError(w.Update(func(a *arena.Arena) error {
		guest, slot, err := arena.Create[entity.Guest](a)
		if err != nil {
			return err
		}
		guest.Name = "Robin"
		if err := a.MoveTo(slot.ID, types.Position{X: 40, Y: 40}); err != nil {
			return err
		}
		if _, err := a.Allocate(types.KindGuest); err != nil {
			return err
		}
		litter, slot, err := arena.Create[entity.Litter](a)
		if err != nil {
			return err
		}
		litter.Type = entity.LitterVomit
		if err := a.MoveTo(slot.ID, types.Position{X: 50, Y: 60}); err != nil {
			return err
		}
		_, err = a.Allocate(types.KindBalloon)
		return err
	}))
	s.Require().NoError(w.Tick(context.Background()))

	srv, err := server.New(w, "")
	s.Require().NoError(err)
	s.app = srv.App()
}

func (s *ServerTestSuite) get(path string, wantStatus int, out any) {
	res, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	s.Require().NoError(err)
	defer res.Body.Close()
	bz, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	s.Require().Equal(wantStatus, res.StatusCode, string(bz))
	if out != nil {
		s.Require().NoError(json.Unmarshal(bz, out))
	}
}

func (s *ServerTestSuite) TestHealth() {
	var res handler.GetHealthResponse
	s.get("/health", fiber.StatusOK, &res)
	s.True(res.IsServerRunning)
	s.Equal(uint64(1), res.Tick)
}

func (s *ServerTestSuite) TestArenaSummary() {
	var res handler.ArenaSummaryResponse
	s.get("/debug/entities", fiber.StatusOK, &res)
	s.Equal(16, res.Capacity)
	s.Equal(4, res.Live)
	s.Equal(12, res.Free)
	s.Equal(1, res.Misc)
	s.Equal(4, res.MiscLimit)
	s.Equal(map[string]int{"guest": 2, "litter": 1, "balloon": 1}, res.Kinds)
}

func (s *ServerTestSuite) TestEntitiesByKind() {
	var res []struct {
		ID     types.Handle    `json:"id"`
		Kind   string          `json:"kind"`
		Header entity.Header   `json:"header"`
		Body   json.RawMessage `json:"body"`
	}
	s.get("/debug/entities/guest", fiber.StatusOK, &res)
	s.Require().Len(res, 2)
	s.Equal(types.Handle(0), res[0].ID)
	s.Equal(types.Handle(1), res[1].ID)
	s.Equal("guest", res[0].Kind)
	s.Equal(types.Position{X: 40, Y: 40}, res[0].Header.Pos)

	var guest entity.Guest
	s.Require().NoError(json.Unmarshal(res[0].Body, &guest))
	s.Equal("Robin", guest.Name)

	s.get("/debug/entities/duck", fiber.StatusOK, &res)
	s.Empty(res)
}

func (s *ServerTestSuite) TestEntitiesByUnknownKind() {
	var res server.ErrorResponse
	s.get("/debug/entities/dragon", fiber.StatusBadRequest, &res)
	s.Contains(res.Error.Message, "dragon")
	s.get("/debug/entities/null", fiber.StatusBadRequest, nil)
}

func (s *ServerTestSuite) TestEntity() {
	var res struct {
		ID   types.Handle `json:"id"`
		Kind string       `json:"kind"`
	}
	s.get("/debug/entity/2", fiber.StatusOK, &res)
	s.Equal(types.Handle(2), res.ID)
	s.Equal("litter", res.Kind)

	var errRes server.ErrorResponse
	s.get("/debug/entity/9", fiber.StatusNotFound, &errRes)
	s.Equal("not_live", errRes.Error.Kind)
	s.get("/debug/entity/100", fiber.StatusBadRequest, &errRes)
	s.Equal("invalid_handle", errRes.Error.Kind)
	s.get("/debug/entity/abc", fiber.StatusBadRequest, nil)
}

func (s *ServerTestSuite) TestCell() {
	var res handler.CellResponse
	s.get("/debug/cell?x=40&y=40", fiber.StatusOK, &res)
	s.Equal(1*8+1, res.Cell)
	s.Require().Len(res.Entities, 2)
	s.Equal("guest", res.Entities[0].Kind)
	s.Equal("litter", res.Entities[1].Kind)

	s.get("/debug/cell", fiber.StatusOK, &res)
	s.Equal(8*8, res.Cell)
	s.Require().Len(res.Entities, 2)
	s.Equal("balloon", res.Entities[1].Kind)
}

func (s *ServerTestSuite) TestChecksum() {
	var res handler.ChecksumResponse
	s.get("/debug/checksum", fiber.StatusOK, &res)
	s.Equal(uint64(1), res.Tick)
	s.Equal(s.w.Checksum(), res.Checksum)
	s.Len(res.Kinds, 3)
}

func (s *ServerTestSuite) TestValidate() {
	var res handler.ValidateResponse
	s.get("/debug/validate", fiber.StatusOK, &res)
	s.True(res.OK)
}

func (s *ServerTestSuite) TestNewRequiresWorld() {
	_, err := server.New(nil, "")
	s.Error(err)
}
