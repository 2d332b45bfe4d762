package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/flowadmin/internal/dto"
	"github.com/GregMSThompson/flowadmin/internal/errs"
	"github.com/GregMSThompson/flowadmin/internal/models"
	"github.com/GregMSThompson/flowadmin/pkg/helpers"
)

type stubUserService struct {
	users       []models.AdminUser
	err         error
	lastUID     string
	lastCaller  *models.AuthUser
	lastRoleReq dto.SetRoleRequest
	lastEmail   string
	syncCalled  bool
}

func (s *stubUserService) ListUsers(_ context.Context) ([]models.AdminUser, error) {
	return s.users, s.err
}

func (s *stubUserService) GetUser(_ context.Context, uid string) (models.AdminUser, error) {
	s.lastUID = uid
	return models.AdminUser{UID: uid}, s.err
}

func (s *stubUserService) SetRole(_ context.Context, caller *models.AuthUser, req dto.SetRoleRequest) (models.AdminUser, error) {
	s.lastCaller, s.lastRoleReq = caller, req
	return models.AdminUser{UID: req.UID}, s.err
}

func (s *stubUserService) VerificationLink(_ context.Context, email string) (string, error) {
	s.lastEmail = email
	return "https://verify.example.com/" + email, s.err
}

func (s *stubUserService) SyncSupabaseUsers(_ context.Context) (dto.UserSyncResult, error) {
	s.syncCalled = true
	return dto.UserSyncResult{FirebaseUsers: 2, Inserted: 1, Existing: 1}, s.err
}

func TestListUsers_WritesSnakeCase(t *testing.T) {
	svc := &stubUserService{users: []models.AdminUser{{
		UID:         "u1",
		Email:       "a@example.com",
		DisplayName: helpers.Ptr("Jane"),
		CreatedAt:   "1700000000000",
	}}}
	h := NewUserHandlers(&Deps{ResponseHandler: realResponseHandler(), UserSvc: svc})

	rr := httptest.NewRecorder()
	h.ListUsers(rr, withUser(httptest.NewRequest(http.MethodGet, "/admin/auth/users", nil), testAdmin))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var body struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 1 || body.Data[0]["display_name"] != "Jane" || body.Data[0]["created_at"] != "1700000000000" {
		t.Fatalf("unexpected payload: %s", rr.Body.String())
	}
}

func TestGetUser_PassesUID(t *testing.T) {
	svc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	req := withChiParams(withUser(httptest.NewRequest(http.MethodGet, "/users/u9", nil), testAdmin), "uid", "u9")
	h.GetUser(httptest.NewRecorder(), req)

	if svc.lastUID != "u9" || !resp.writeSuccessCalled {
		t.Fatalf("GetUser not called with u9")
	}
}

func TestSetRole_OK(t *testing.T) {
	svc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/set-role", strings.NewReader(`{"uid":"u2","role":"user"}`))
	h.SetRole(httptest.NewRecorder(), withUser(req, testAdmin))

	if svc.lastCaller != testAdmin || svc.lastRoleReq != (dto.SetRoleRequest{UID: "u2", Role: "user"}) {
		t.Fatalf("unexpected SetRole call: %+v %+v", svc.lastCaller, svc.lastRoleReq)
	}
	if resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.writeSuccessStatus)
	}
}

func TestSetRole_InvalidBody(t *testing.T) {
	cases := []string{`{"role":"admin"}`, `{"uid":"u2","role":"owner"}`, `{`}
	for _, body := range cases {
		svc := &stubUserService{}
		resp := &stubResponseHandler{}
		h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

		req := httptest.NewRequest(http.MethodPost, "/set-role", strings.NewReader(body))
		h.SetRole(httptest.NewRecorder(), withUser(req, testAdmin))

		var ve *errs.ValidationError
		if !errors.As(resp.handleError, &ve) {
			t.Fatalf("body %q: expected ValidationError, got %v", body, resp.handleError)
		}
		if svc.lastCaller != nil {
			t.Fatalf("body %q: service should not be called", body)
		}
	}
}

func TestSyncUsers_OK(t *testing.T) {
	svc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	h.SyncUsers(httptest.NewRecorder(), withUser(httptest.NewRequest(http.MethodPost, "/sync-users", nil), testAdmin))

	if !svc.syncCalled || !resp.writeSuccessCalled {
		t.Fatal("expected sync to run and succeed")
	}
}

func TestVerificationLink(t *testing.T) {
	svc := &stubUserService{}
	resp := &stubResponseHandler{}
	h := NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})

	req := httptest.NewRequest(http.MethodPost, "/verify-link", strings.NewReader(`{"email":"a@example.com"}`))
	h.VerificationLink(httptest.NewRecorder(), withUser(req, testAdmin))

	data, _ := resp.writeSuccessData.(map[string]string)
	if data["link"] != "https://verify.example.com/a@example.com" {
		t.Fatalf("unexpected data: %v", resp.writeSuccessData)
	}

	resp = &stubResponseHandler{}
	h = NewUserHandlers(&Deps{ResponseHandler: resp, UserSvc: svc})
	req = httptest.NewRequest(http.MethodPost, "/verify-link", strings.NewReader(`{"email":"nope"}`))
	h.VerificationLink(httptest.NewRecorder(), withUser(req, testAdmin))
	if !resp.handleErrorCalled {
		t.Fatal("expected invalid email to be rejected")
	}
}
