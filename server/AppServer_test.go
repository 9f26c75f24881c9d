package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/NiubilityNetCore/claim-share-server/auth"
	"github.com/NiubilityNetCore/claim-share-server/config"
	"github.com/NiubilityNetCore/claim-share-server/dao"
	"github.com/NiubilityNetCore/claim-share-server/metadata/models"
	"github.com/NiubilityNetCore/claim-share-server/protocol"
	"github.com/NiubilityNetCore/claim-share-server/server"
	"github.com/NiubilityNetCore/claim-share-server/services/registry"
	"github.com/NiubilityNetCore/claim-share-server/share"
)

func newTestServer(t *testing.T) (*server.AppServer, *dao.FakeDAO) {
	t.Helper()
	d := dao.NewFakeDAO("root")
	for _, name := range []string{"alice", "bob"} {
		if _, err := d.CreateUser(models.User{Username: name, CreatedBy: name}); err != nil {
			t.Fatalf("seeding user %s: %v", name, err)
		}
	}
	a := auth.NewClaimAuth(zap.NewNop(), d)
	mgr := share.NewManager(d, a, &registry.FakeValidator{Valid: true}, share.WithLogger(zap.NewNop()))
	conf := config.ServerSettingsConfiguration{ListenPort: "0", ListenBind: "127.0.0.1"}
	return server.NewAppServer(conf, d, a, mgr), d
}

func doRequest(t *testing.T, app *server.AppServer, method, path, username string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, config.RootURLRegex+path, &buf)
	if username != "" {
		req.Header.Set("USER_NAME", username)
	}
	w := httptest.NewRecorder()
	app.ServeHTTP(w, req)
	return w
}

func TestPing(t *testing.T) {
	app, _ := newTestServer(t)
	w := doRequest(t, app, "GET", "/ping", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp protocol.SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Response != "success" {
		t.Errorf("expected success body, got %q", resp.Response)
	}
}

func TestMissingIdentityRejected(t *testing.T) {
	app, _ := newTestServer(t)
	w := doRequest(t, app, "GET", "/messages", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestAddShareTypeLevel(t *testing.T) {
	app, d := newTestServer(t)

	body := protocol.ShareRequest{DataType: "Country", Operation: "View", TargetUser: "bob"}

	// the site administrator may share a whole type
	w := doRequest(t, app, "POST", "/shares", "root", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	has, _ := d.HasClaim(models.UserPrincipal("bob"), models.ClaimView, "Country")
	if !has {
		t.Error("expected the View claim to be stored")
	}

	// a plain user may not
	w = doRequest(t, app, "POST", "/shares", "alice", body)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
	var resp protocol.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Error == "" {
		t.Error("expected an error body")
	}
}

func TestRemoveShareStripsImplied(t *testing.T) {
	app, d := newTestServer(t)
	itemID := "0123456789abcdef0123456789abcdef"
	itemValue := "Country{" + itemID + "}"
	d.AddClaim(models.UserPrincipal("alice"), models.ClaimOwner, itemValue, "root")
	d.AddClaim(models.UserPrincipal("bob"), models.ClaimView, itemValue, "root")
	d.AddClaim(models.UserPrincipal("bob"), models.ClaimAll, itemValue, "root")

	body := protocol.ShareRequest{DataType: "Country", Operation: "View", ItemID: itemID, TargetUser: "bob"}
	w := doRequest(t, app, "DELETE", "/shares", "alice", body)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	for _, claimType := range []string{models.ClaimView, models.ClaimAll} {
		has, _ := d.HasClaim(models.UserPrincipal("bob"), claimType, itemValue)
		if has {
			t.Errorf("expected %s claim removed", claimType)
		}
	}
}

func TestGroupLifecycleOverHTTP(t *testing.T) {
	app, d := newTestServer(t)

	w := doRequest(t, app, "POST", "/groups", "alice", protocol.GroupRequest{GroupName: "Engineering"})
	if w.Code != http.StatusOK {
		t.Fatalf("create group: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, app, "POST", "/groups/Engineering/members", "alice", protocol.MemberRequest{Username: "bob"})
	if w.Code != http.StatusOK {
		t.Fatalf("add member: expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = doRequest(t, app, "GET", "/groups/Engineering/members", "bob", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list members: expected 200, got %d", w.Code)
	}
	var roster protocol.GroupMembersResponse
	if err := json.Unmarshal(w.Body.Bytes(), &roster); err != nil {
		t.Fatal(err)
	}
	if len(roster.Members) != 2 {
		t.Errorf("expected 2 members, got %v", roster.Members)
	}

	w = doRequest(t, app, "POST", "/groups/Engineering/manager/bob", "alice", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("transfer manager: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	manager, _ := d.GetGroupManager("Engineering")
	if manager != "bob" {
		t.Errorf("expected bob as manager, got %q", manager)
	}

	w = doRequest(t, app, "DELETE", "/groups/Engineering", "bob", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("remove group: expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestReservedGroupNameOverHTTP(t *testing.T) {
	app, _ := newTestServer(t)
	w := doRequest(t, app, "POST", "/groups", "alice", protocol.GroupRequest{GroupName: "Administrator"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	app, _ := newTestServer(t)
	w := doRequest(t, app, "GET", "/nope", "alice", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestUnknownCallerProvisioned(t *testing.T) {
	app, d := newTestServer(t)

	w := doRequest(t, app, "GET", "/messages", "newcomer", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if _, err := d.GetUserByUsername("newcomer"); err != nil {
		t.Errorf("expected newcomer to be provisioned: %v", err)
	}
}
