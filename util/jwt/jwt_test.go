package jwt

import "testing"

func TestIssueAndParse(t *testing.T) {
	token, err := Issue("s3cret", 42, "SELLER_BUYER", 1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := ParseAuth("Bearer "+token, "s3cret")
	if err != nil {
		t.Fatalf("ParseAuth: %v", err)
	}
	if claims["sub"].(float64) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if claims["role"] != "SELLER_BUYER" {
		t.Fatalf("role = %v", claims["role"])
	}
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Issue("s3cret", 42, "SELLER_BUYER", 1)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := ParseAuth(token, "other"); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParse_Missing(t *testing.T) {
	if _, err := ParseAuth("", "s3cret"); err == nil {
		t.Fatal("expected error for empty header")
	}
}
