package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cucumber/godog"

	"github.com/doodlesbykumbi/relaydb/pkg/db"
	"github.com/doodlesbykumbi/relaydb/pkg/model"
	"github.com/doodlesbykumbi/relaydb/pkg/realm"
	"github.com/doodlesbykumbi/relaydb/pkg/server"
	"github.com/doodlesbykumbi/relaydb/pkg/store"
)

// StepsContext holds state shared between step definitions
type StepsContext struct {
	tc           *TestContext
	client       *http.Client
	defaults     realm.Options
	kind         store.Kind
	driver       *db.Driver
	relay        *ServerInstance
	response     *http.Response
	responseBody []byte
}

// NewStepsContext creates a new steps context
func NewStepsContext(tc *TestContext) *StepsContext {
	return &StepsContext{
		tc:     tc,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// RegisterSteps registers all step definitions
func (s *StepsContext) RegisterSteps(sc *godog.ScenarioContext) {
	sc.Step(`^relay realms default to max-bps (\d+), total quota (\d+) and user quota (\d+)$`, s.relayRealmsDefaultTo)
	sc.Step(`^an? (sqlite|postgresql|mysql|redis) user database$`, s.aUserDatabase)
	sc.Step(`^the relay is running$`, s.theRelayIsRunning)

	sc.Step(`^origin "([^"]*)" is mapped to realm "([^"]*)"$`, s.originIsMappedToRealm)
	sc.Step(`^origin "([^"]*)" is removed$`, s.originIsRemoved)
	sc.Step(`^realm "([^"]*)" has option "([^"]*)" set to (\d+)$`, s.realmHasOptionSetTo)

	sc.Step(`^I request a reload$`, s.iRequestAReload)
	sc.Step(`^the response status should be (\d+)$`, s.theResponseStatusShouldBe)

	sc.Step(`^origin "([^"]*)" should resolve to realm "([^"]*)"$`, s.originShouldResolveToRealm)
	sc.Step(`^origin "([^"]*)" should not resolve$`, s.originShouldNotResolve)
	sc.Step(`^realm "([^"]*)" should have max-bps (\d+), total quota (\d+) and user quota (\d+)$`, s.realmShouldHave)
	sc.Step(`^(\d+) reloads? should have run$`, s.reloadsShouldHaveRun)

	sc.After(func(ctx context.Context, _ *godog.Scenario, err error) (context.Context, error) {
		s.cleanup(ctx)
		return ctx, nil
	})
}

func (s *StepsContext) cleanup(ctx context.Context) {
	if s.relay != nil {
		s.relay.Stop()
		s.relay = nil
	}
	if s.driver != nil {
		_ = s.driver.Disconnect(ctx)
		s.driver = nil
	}
}

// Setup steps

func (s *StepsContext) relayRealmsDefaultTo(maxBPS uint64, totalQuota, userQuota int) error {
	s.defaults = realm.Options{MaxBPS: maxBPS, TotalQuota: totalQuota, UserQuota: userQuota}
	return nil
}

func (s *StepsContext) aUserDatabase(ctx context.Context, name string) error {
	kind, err := store.KindString(name)
	if err != nil {
		return err
	}
	if _, ok := s.tc.Locations[kind]; !ok {
		return godog.ErrSkip
	}
	if err := s.tc.Reset(ctx, kind); err != nil {
		return fmt.Errorf("failed to reset %s user database: %w", kind, err)
	}

	d, err := db.Open(db.Config{Kind: kind, Location: s.tc.Locations[kind], Hash: model.HashSHA1})
	if err != nil {
		return err
	}
	d.SuppressSuccessLog()
	s.kind = kind
	s.driver = d
	return nil
}

func (s *StepsContext) theRelayIsRunning() error {
	relay, err := StartServer(s.tc, ServerConfig{
		Kind:     s.kind,
		Location: s.tc.Locations[s.kind],
		Defaults: s.defaults,
	})
	if err != nil {
		return err
	}
	s.relay = relay
	return nil
}

// User database steps

func (s *StepsContext) originIsMappedToRealm(ctx context.Context, origin, realmName string) error {
	return s.driver.AddOrigin(ctx, origin, realmName)
}

func (s *StepsContext) originIsRemoved(ctx context.Context, origin string) error {
	return s.driver.DeleteOrigin(ctx, origin)
}

func (s *StepsContext) realmHasOptionSetTo(ctx context.Context, realmName, option string, value int64) error {
	opt, err := model.RealmOptionNameString(option)
	if err != nil {
		return err
	}
	return s.driver.SetRealmOption(ctx, realmName, opt, value)
}

// Status API steps

func (s *StepsContext) do(method, path string) error {
	req, err := http.NewRequest(method, s.relay.ServerURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	s.response = resp
	s.responseBody, err = io.ReadAll(resp.Body)
	return err
}

func (s *StepsContext) iRequestAReload() error {
	return s.do(http.MethodPost, "/reload")
}

func (s *StepsContext) theResponseStatusShouldBe(status int) error {
	if s.response == nil {
		return fmt.Errorf("no response received")
	}
	if s.response.StatusCode != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, s.response.StatusCode, s.responseBody)
	}
	return nil
}

func (s *StepsContext) originShouldResolveToRealm(origin, realmName string) error {
	if err := s.do(http.MethodGet, "/origins/"+url.PathEscape(origin)); err != nil {
		return err
	}
	if err := s.theResponseStatusShouldBe(http.StatusOK); err != nil {
		return err
	}
	var got map[string]string
	if err := json.Unmarshal(s.responseBody, &got); err != nil {
		return err
	}
	if got["realm"] != realmName {
		return fmt.Errorf("origin %s resolves to %q, want %q", origin, got["realm"], realmName)
	}
	return nil
}

func (s *StepsContext) originShouldNotResolve(origin string) error {
	if err := s.do(http.MethodGet, "/origins/"+url.PathEscape(origin)); err != nil {
		return err
	}
	return s.theResponseStatusShouldBe(http.StatusNotFound)
}

func (s *StepsContext) realms() (server.RealmsResponse, error) {
	var resp server.RealmsResponse
	if err := s.do(http.MethodGet, "/realms"); err != nil {
		return resp, err
	}
	if err := s.theResponseStatusShouldBe(http.StatusOK); err != nil {
		return resp, err
	}
	err := json.Unmarshal(s.responseBody, &resp)
	return resp, err
}

func (s *StepsContext) realmShouldHave(realmName string, maxBPS uint64, totalQuota, userQuota int) error {
	resp, err := s.realms()
	if err != nil {
		return err
	}
	got, ok := resp.Realms[realmName]
	if !ok {
		return fmt.Errorf("realm %s is not live", realmName)
	}
	want := realm.Options{MaxBPS: maxBPS, TotalQuota: totalQuota, UserQuota: userQuota}
	if got != want {
		return fmt.Errorf("realm %s has %+v, want %+v", realmName, got, want)
	}
	return nil
}

func (s *StepsContext) reloadsShouldHaveRun(count int) error {
	resp, err := s.realms()
	if err != nil {
		return err
	}
	if resp.Reload.Count != count {
		return fmt.Errorf("%d reloads ran, want %d", resp.Reload.Count, count)
	}
	return nil
}
