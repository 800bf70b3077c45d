package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/educonnect/educonnect/cmd/eduapi/internal/db/models"
)

func init() {
	Migrations.MustRegister(up_20260301000000, down_20260301000000)
}

// up_20260301000000 initializes the full marketplace schema
func up_20260301000000(ctx context.Context, db *bun.DB) error {
	fmt.Print(" [up] creating users table...")
	_, err := db.NewCreateTable().
		Model((*models.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	// Emails are matched case-insensitively at login; the unique column
	// constraint alone would let "A@x.com" and "a@x.com" coexist. Neither
	// engine spells this index the same way.
	switch {
	case IsPostgreSQL(db):
		_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_ci ON users (lower(email))`)
	case IsSQLite(db):
		_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_ci ON users (email COLLATE NOCASE)`)
	}
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating gigs table...")
	_, err = db.NewCreateTable().
		Model((*models.Gig)(nil)).
		IfNotExists().
		ForeignKey(`("teacher_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create gigs table: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_gigs_category ON gigs(category)`)
	if err != nil {
		return fmt.Errorf("failed to create category index: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_gigs_teacher ON gigs(teacher_id)`)
	if err != nil {
		return fmt.Errorf("failed to create teacher index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating bookings table...")
	_, err = db.NewCreateTable().
		Model((*models.Booking)(nil)).
		IfNotExists().
		ForeignKey(`("gig_id") REFERENCES "gigs" ("id") ON DELETE CASCADE`).
		ForeignKey(`("student_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_bookings_student ON bookings(student_id)`)
	if err != nil {
		return fmt.Errorf("failed to create student index: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_bookings_teacher ON bookings(teacher_id)`)
	if err != nil {
		return fmt.Errorf("failed to create booking teacher index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating reviews table...")
	_, err = db.NewCreateTable().
		Model((*models.Review)(nil)).
		IfNotExists().
		ForeignKey(`("gig_id") REFERENCES "gigs" ("id") ON DELETE CASCADE`).
		ForeignKey(`("student_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create reviews table: %w", err)
	}
	// One review per student per gig.
	_, err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_reviews_gig_student ON reviews(gig_id, student_id)`)
	if err != nil {
		return fmt.Errorf("failed to create review uniqueness index: %w", err)
	}
	fmt.Println(" OK")

	fmt.Print(" [up] creating wallet_transactions table...")
	_, err = db.NewCreateTable().
		Model((*models.WalletTransaction)(nil)).
		IfNotExists().
		ForeignKey(`("user_id") REFERENCES "users" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create wallet_transactions table: %w", err)
	}
	_, err = db.Exec(`CREATE INDEX IF NOT EXISTS idx_wallet_tx_user ON wallet_transactions(user_id)`)
	if err != nil {
		return fmt.Errorf("failed to create wallet index: %w", err)
	}
	fmt.Println(" OK")

	return nil
}

// down_20260301000000 drops the marketplace schema
func down_20260301000000(ctx context.Context, db *bun.DB) error {
	for _, model := range []any{
		(*models.WalletTransaction)(nil),
		(*models.Review)(nil),
		(*models.Booking)(nil),
		(*models.Gig)(nil),
		(*models.User)(nil),
	} {
		if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
			return fmt.Errorf("failed to drop table: %w", err)
		}
	}
	return nil
}
