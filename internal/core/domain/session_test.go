package domain

import "testing"

func TestSession_SignInAndOut(t *testing.T) {
	sess := NewSession("s1")
	if sess.Authenticated() || !sess.IsNew {
		t.Fatalf("new session should be anonymous and new")
	}

	sess.SignIn(&User{ID: "u1", Username: "alice", Email: "alice@x.com", PasswordHash: "hash"})
	if !sess.Authenticated() || sess.User.Username != "alice" {
		t.Fatalf("expected alice to be signed in")
	}

	sess.SignOut()
	if sess.Authenticated() {
		t.Fatalf("expected anonymous session after sign out")
	}

	var nilSess *Session
	if nilSess.Authenticated() {
		t.Fatalf("nil session is never authenticated")
	}
}

func TestParseLogoutMode(t *testing.T) {
	cases := map[string]LogoutMode{
		"destroy":   LogoutDestroy,
		"keep_cart": LogoutKeepCart,
		"":          LogoutDestroy,
		"bogus":     LogoutDestroy,
	}
	for in, want := range cases {
		if got := ParseLogoutMode(in); got != want {
			t.Errorf("ParseLogoutMode(%q) = %s, want %s", in, got, want)
		}
	}
}
