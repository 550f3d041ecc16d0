package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/Furiouss38/podv2/internal/model"
)

func TestThemeSave(t *testing.T) {
	parent := int64(2)
	tests := []struct {
		name     string
		theme    model.Theme
		expect   func(mock pgxmock.PgxPoolIface)
		wantID   int64
		wantSlug string
		wantErr  error
	}{
		{
			name:  "create derives slug",
			theme: model.Theme{Title: "Algèbre Linéaire", ChannelID: 3, ParentID: &parent},
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO themes").
					WithArgs(&parent, "Algèbre Linéaire", "algebre-lineaire", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(3)).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(9)))
			},
			wantID:   9,
			wantSlug: "algebre-lineaire",
		},
		{
			name:  "update recomputes slug",
			theme: model.Theme{ID: 9, Title: "Analyse", Slug: "algebre-lineaire", ChannelID: 3},
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("UPDATE themes").
					WithArgs(pgxmock.AnyArg(), "Analyse", "analyse", pgxmock.AnyArg(), pgxmock.AnyArg(), int64(3), int64(9)).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
			wantID:   9,
			wantSlug: "analyse",
		},
		{
			name:  "update missing row",
			theme: model.Theme{ID: 404, Title: "Gone", ChannelID: 3},
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectExec("UPDATE themes").WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			wantID:   404,
			wantSlug: "gone",
			wantErr:  pgx.ErrNoRows,
		},
		{
			name:  "unknown channel",
			theme: model.Theme{Title: "Orphan", ChannelID: 77},
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO themes").
					WillReturnError(&pgconn.PgError{Code: codeForeignKeyViolation, ConstraintName: "themes_channel_id_fkey"})
			},
			wantSlug: "orphan",
			wantErr:  ErrInvalidReference,
		},
		{
			name:  "value too long",
			theme: model.Theme{Title: "Long", ChannelID: 3},
			expect: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO themes").
					WillReturnError(&pgconn.PgError{Code: codeStringTruncation, Message: "value too long"})
			},
			wantSlug: "long",
			wantErr:  ErrValueTooLong,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			tt.expect(mock)

			th := tt.theme
			err := NewThemeRepo(mock).Save(context.Background(), &th)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
			} else if err != nil {
				t.Fatalf("Save: %v", err)
			}
			if tt.wantErr == nil && th.ID != tt.wantID {
				t.Errorf("ID = %d, want %d", th.ID, tt.wantID)
			}
			if th.Slug != tt.wantSlug {
				t.Errorf("Slug = %q, want %q", th.Slug, tt.wantSlug)
			}
			assertExpectations(t, mock)
		})
	}
}
