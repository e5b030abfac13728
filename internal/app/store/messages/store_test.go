package messages_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/clubhub/internal/app/store/docstore"
	"github.com/dalemusser/clubhub/internal/app/store/messages"
	"github.com/dalemusser/clubhub/internal/app/system/inputval"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/clubhub/internal/testutil"
)

func TestCreateListDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := messages.New(db)

	m, err := s.Create(ctx, models.ContactMessage{
		Name:    " Priya ",
		Email:   "Priya@Example.com",
		Message: "<b>Hello</b> there",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if m.Name != "Priya" || m.Email != "priya@example.com" || m.Message != "Hello there" {
		t.Errorf("stored message = %+v", m)
	}

	list, err := s.List(ctx, 0)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = (%v, %v)", list, err)
	}

	if err := s.Delete(ctx, m.ID.Hex()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete(ctx, m.ID.Hex()); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("second delete: expected ErrNotFound, got %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	s := messages.New(db)

	cases := []models.ContactMessage{
		{Email: "a@b.co", Message: "hi"},
		{Name: "A", Email: "not-an-email", Message: "hi"},
		{Name: "A", Email: "a@b.co", Message: "<script></script>"},
	}
	for _, c := range cases {
		if _, err := s.Create(ctx, c); !inputval.IsValidation(err) {
			t.Errorf("%+v: expected validation error, got %v", c, err)
		}
	}
}
