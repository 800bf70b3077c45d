package sdk

import (
	"io"
	"net/http"
	"strings"
)

// NetworkErrorFunc is notified when a request fails with no response at all
// (connectivity loss, DNS failure). It must not block.
type NetworkErrorFunc func(req *http.Request, err error)

// AuthTransport is the authenticated request pipeline. It attaches the
// session's bearer token to outgoing requests and, when the backend answers
// 401 for anything other than the sync endpoint itself, performs exactly one
// re-synchronization and resends the original request exactly once with the
// fresh token.
//
// Auth endpoints are sent unauthenticated: they establish the session rather
// than consume it, and exempting them is what prevents a retry loop through
// the sync endpoint.
type AuthTransport struct {
	// Store supplies the current bearer token.
	Store SessionStore
	// Syncer performs the one-shot re-synchronization on 401.
	Syncer *Syncer
	// Base is the underlying transport; http.DefaultTransport when nil.
	Base http.RoundTripper
	// OnNetworkError, when set, is invoked for failures with no response.
	OnNetworkError NetworkErrorFunc
}

var _ http.RoundTripper = (*AuthTransport)(nil)

func (t *AuthTransport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

func isAuthPath(path string) bool {
	return strings.Contains(path, "/auth/")
}

// RoundTrip implements http.RoundTripper.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())

	if !isAuthPath(out.URL.Path) {
		if session, err := t.Store.Load(); err == nil && session.HasToken() {
			out.Header.Set("Authorization", "Bearer "+session.Token)
		}
	}

	resp, err := t.base().RoundTrip(out)
	if err != nil {
		t.notify(out, err)
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized || isAuthPath(out.URL.Path) {
		return resp, nil
	}
	if t.Syncer == nil {
		return resp, nil
	}

	// A retry needs a replayable body. GetBody is set for the buffered bodies
	// http.NewRequest produces; when it is missing the original 401 stands.
	if req.Body != nil && req.GetBody == nil {
		return resp, nil
	}

	session, syncErr := t.Syncer.Resync(req.Context())
	if syncErr != nil || !session.HasToken() {
		// Nothing to retry with: the original 401 is the caller's answer.
		return resp, nil
	}

	retry := req.Clone(req.Context())
	if req.GetBody != nil {
		body, bodyErr := req.GetBody()
		if bodyErr != nil {
			return resp, nil
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+session.Token)

	drain(resp)

	retryResp, retryErr := t.base().RoundTrip(retry)
	if retryErr != nil {
		t.notify(retry, retryErr)
		return nil, retryErr
	}
	// At most one retry: whatever came back is surfaced, including a second 401.
	return retryResp, nil
}

func (t *AuthTransport) notify(req *http.Request, err error) {
	if t.OnNetworkError != nil {
		t.OnNetworkError(req, err)
	}
}

func drain(resp *http.Response) {
	if resp.Body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		_ = resp.Body.Close()
	}
}

// NewAuthenticatedHTTPClient builds an http.Client whose transport is an
// AuthTransport over store and syncer.
func NewAuthenticatedHTTPClient(store SessionStore, syncer *Syncer, onNetErr NetworkErrorFunc) *http.Client {
	return &http.Client{
		Transport: &AuthTransport{
			Store:          store,
			Syncer:         syncer,
			OnNetworkError: onNetErr,
		},
	}
}
