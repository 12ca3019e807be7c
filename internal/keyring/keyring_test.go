package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/thirtyday?sslmode=disable"

	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
}

func TestDeleteConnectionStringNotFound(t *testing.T) {
	gokeyring.MockInit()

	_ = DeleteConnectionString()

	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConnectionString() error = %v, want %v", err, ErrNotFound)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want %v", err, ErrNotFound)
	}
}

func TestTokenStoreRoundTrip(t *testing.T) {
	gokeyring.MockInit()
	store := NewTokenStore()

	if _, err := store.GetToken(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetToken() on empty keyring error = %v, want ErrNotFound", err)
	}

	if err := store.SaveToken("first"); err != nil {
		t.Fatalf("SaveToken() failed: %v", err)
	}
	if err := store.SaveToken("second"); err != nil {
		t.Fatalf("SaveToken() failed: %v", err)
	}

	got, err := store.GetToken()
	if err != nil {
		t.Fatalf("GetToken() failed: %v", err)
	}
	if got != "second" {
		t.Errorf("GetToken() = %q, want the replacing token %q", got, "second")
	}

	if err := store.DeleteToken(); err != nil {
		t.Fatalf("DeleteToken() failed: %v", err)
	}
	if err := store.DeleteToken(); err != nil {
		t.Errorf("DeleteToken() on missing token should be a no-op, got %v", err)
	}
}

func TestTokenStoreRejectsEmptyToken(t *testing.T) {
	gokeyring.MockInit()

	if err := NewTokenStore().SaveToken(""); err == nil {
		t.Error("SaveToken(\"\") should return an error")
	}
}

func TestTokenAndConnectionStringAreSeparate(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("postgres://u@localhost/db"); err != nil {
		t.Fatal(err)
	}
	if err := NewTokenStore().SaveToken("tok"); err != nil {
		t.Fatal(err)
	}

	conn, _ := GetConnectionString()
	if conn != "postgres://u@localhost/db" {
		t.Errorf("connection string overwritten: %q", conn)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false, want true in mock mode")
	}
}
