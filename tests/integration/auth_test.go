package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/iho/armory/tests/testutil"
)

func TestSignupLoginMe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(t)

	router, _ := newTestStack(t, ctx, testDB)

	baseID := testDB.CreateTestBase(t, "Fort Hotel")

	var signup struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	code := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "cmdr.stone",
		"password": "correct horse battery",
		"role":     "base_commander",
		"base_id":  baseID,
	}, &signup)
	if code != http.StatusCreated {
		t.Fatalf("expected signup to return 201, got %d", code)
	}
	if signup.Token == "" {
		t.Fatal("expected signup to return a token")
	}
	if _, ok := signup.User["password"]; ok {
		t.Error("expected user payload to omit the password")
	}

	// Duplicate usernames conflict.
	code = doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "cmdr.stone",
		"password": "another password",
		"role":     "base_commander",
		"base_id":  baseID,
	}, nil)
	if code != http.StatusConflict {
		t.Fatalf("expected duplicate signup to return 409, got %d", code)
	}

	var login struct {
		Token string         `json:"token"`
		User  map[string]any `json:"user"`
	}
	code = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "cmdr.stone",
		"password": "correct horse battery",
	}, &login)
	if code != http.StatusOK {
		t.Fatalf("expected login to return 200, got %d", code)
	}
	if login.Token == "" {
		t.Fatal("expected login to return a token")
	}

	code = doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "cmdr.stone",
		"password": "wrong password",
	}, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected bad password to return 401, got %d", code)
	}

	var me map[string]any
	code = doJSON(t, router, http.MethodGet, "/api/auth/me", login.Token, nil, &me)
	if code != http.StatusOK {
		t.Fatalf("expected me to return 200, got %d", code)
	}
	if got := me["username"].(string); got != "cmdr.stone" {
		t.Errorf("expected username cmdr.stone, got %q", got)
	}
	if got := me["base_id"].(string); got != baseID {
		t.Errorf("expected base_id %q, got %q", baseID, got)
	}
}

func TestRoleEnforcement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(t)

	router, _ := newTestStack(t, ctx, testDB)

	baseID := testDB.CreateTestBase(t, "Fort India")
	typeID := testDB.CreateTestEquipmentType(t, "Small Arms")
	equipID := testDB.CreateTestEquipment(t, "Carbine", typeID)

	var signup struct {
		Token string `json:"token"`
	}
	code := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]any{
		"username": "log.officer",
		"password": "logistics pass",
		"role":     "logistics_officer",
		"base_id":  baseID,
	}, &signup)
	if code != http.StatusCreated {
		t.Fatalf("expected signup to return 201, got %d", code)
	}
	logisticsToken := signup.Token

	// Logistics officers can record purchases.
	code = doJSON(t, router, http.MethodPost, "/api/purchases", logisticsToken, map[string]any{
		"base_id":      baseID,
		"equipment_id": equipID,
		"quantity":     4,
		"price":        "900.00",
	}, nil)
	if code != http.StatusCreated {
		t.Fatalf("expected logistics purchase to return 201, got %d", code)
	}

	// But not override opening balances.
	code = doJSON(t, router, http.MethodPost, "/api/balances/opening-balance", logisticsToken, map[string]any{
		"base_id":         baseID,
		"equipment_id":    equipID,
		"opening_balance": 10,
	}, nil)
	if code != http.StatusForbidden {
		t.Fatalf("expected logistics opening balance to return 403, got %d", code)
	}

	// Nor create reference data.
	code = doJSON(t, router, http.MethodPost, "/api/bases", logisticsToken, map[string]any{
		"name": "Fort Juliett",
	}, nil)
	if code != http.StatusForbidden {
		t.Fatalf("expected logistics base creation to return 403, got %d", code)
	}

	// Unauthenticated requests are rejected outright.
	code = doJSON(t, router, http.MethodGet, "/api/purchases", "", nil, nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected missing token to return 401, got %d", code)
	}

	// Public reference endpoints work without a token.
	var bases []map[string]any
	code = doJSON(t, router, http.MethodGet, "/api/public/bases", "", nil, &bases)
	if code != http.StatusOK {
		t.Fatalf("expected public bases to return 200, got %d", code)
	}
	if len(bases) != 1 {
		t.Fatalf("expected 1 base, got %d", len(bases))
	}
}

func TestBaseScoping(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()
	testDB.TruncateAll(t)

	router, jwtManager := newTestStack(t, ctx, testDB)
	admin := adminToken(t, jwtManager)

	baseA := testDB.CreateTestBase(t, "Fort Kilo")
	baseB := testDB.CreateTestBase(t, "Fort Lima")
	typeID := testDB.CreateTestEquipmentType(t, "Small Arms")
	equipID := testDB.CreateTestEquipment(t, "Pistol", typeID)

	for _, base := range []string{baseA, baseB} {
		code := doJSON(t, router, http.MethodPost, "/api/purchases", admin, map[string]any{
			"base_id":      base,
			"equipment_id": equipID,
			"quantity":     7,
			"price":        "650.00",
		}, nil)
		if code != http.StatusCreated {
			t.Fatalf("expected purchase to return 201, got %d", code)
		}
	}

	// A commander sees only their own base, even when asking for another.
	commander := commanderToken(t, jwtManager, baseA)
	var purchases []map[string]any
	code := doJSON(t, router, http.MethodGet, "/api/purchases?base_id="+baseB, commander, nil, &purchases)
	if code != http.StatusOK {
		t.Fatalf("expected purchase listing to return 200, got %d", code)
	}
	if len(purchases) != 1 {
		t.Fatalf("expected 1 purchase visible to the commander, got %d", len(purchases))
	}
	if got := purchases[0]["base_id"].(string); got != baseA {
		t.Errorf("expected commander pinned to %q, got %q", baseA, got)
	}

	// Admins see whatever they ask for.
	code = doJSON(t, router, http.MethodGet, "/api/purchases", admin, nil, &purchases)
	if code != http.StatusOK {
		t.Fatalf("expected purchase listing to return 200, got %d", code)
	}
	if len(purchases) != 2 {
		t.Fatalf("expected 2 purchases visible to the admin, got %d", len(purchases))
	}
}
