package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/tablemaps/tablemaps-backend/pkg/errors"
	"github.com/tablemaps/tablemaps-backend/pkg/types"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, into any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), into); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestWriteSuccessWrapsData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, map[string]string{"name": "Chez Louise"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	decodeBody(t, rec, &envelope)
	if !envelope.Success {
		t.Fatal("success flag should be true")
	}
	if envelope.Count != nil || envelope.Token != "" {
		t.Fatal("plain success responses should omit count and token")
	}
}

func TestWriteListIncludesCountEvenWhenZero(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteList(rec, 0, nil, []string{})

	var raw map[string]json.RawMessage
	decodeBody(t, rec, &raw)
	if _, ok := raw["count"]; !ok {
		t.Fatal("count should be present for empty lists")
	}
	if _, ok := raw["pagination"]; ok {
		t.Fatal("pagination should be omitted when nil")
	}
}

func TestWriteEnvelopeForcesSuccessAndKeepsToken(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteEnvelope(rec, http.StatusCreated, types.SuccessEnvelope{
		Token: "jwt-token",
		Data:  map[string]string{"email": "a@b.fr"},
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var envelope types.SuccessEnvelope
	decodeBody(t, rec, &envelope)
	if !envelope.Success || envelope.Token != "jwt-token" {
		t.Fatalf("unexpected envelope: %+v", envelope)
	}
}

func TestWriteErrorUsesTypedMessageAndStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{
			name:   "not found",
			err:    pkgerrors.New(pkgerrors.CodeNotFound, "Utilisateur non trouvé"),
			status: http.StatusNotFound,
			msg:    "Utilisateur non trouvé",
		},
		{
			name:   "forbidden",
			err:    pkgerrors.New(pkgerrors.CodeForbidden, "Le rôle user n'est pas autorisé à accéder à cette route"),
			status: http.StatusForbidden,
			msg:    "Le rôle user n'est pas autorisé à accéder à cette route",
		},
		{
			name:   "validation",
			err:    pkgerrors.New(pkgerrors.CodeValidation, "Données invalides"),
			status: http.StatusBadRequest,
			msg:    "Données invalides",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(context.Background(), nil, rec, tc.err)

			if rec.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, rec.Code)
			}
			var envelope types.ErrorEnvelope
			decodeBody(t, rec, &envelope)
			if envelope.Success || envelope.Error != tc.msg {
				t.Fatalf("unexpected envelope: %+v", envelope)
			}
		})
	}
}

func TestWriteErrorHidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, errors.New("pq: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var envelope types.ErrorEnvelope
	decodeBody(t, rec, &envelope)
	if envelope.Error == "pq: connection refused" {
		t.Fatal("internal errors must not leak their raw message")
	}
}
