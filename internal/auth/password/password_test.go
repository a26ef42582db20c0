package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hashed, err := Hash("s3cret-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hashed == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !Verify("s3cret-password", hashed) {
		t.Fatal("expected password to verify against its own hash")
	}
	if Verify("wrong-password", hashed) {
		t.Fatal("expected wrong password to fail verification")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	if Verify("anything", "not-a-bcrypt-hash") {
		t.Fatal("expected malformed hash to fail verification")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("same-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	second, err := Hash("same-password")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if first == second {
		t.Fatal("expected distinct hashes for the same password")
	}
}
