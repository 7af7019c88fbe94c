// Package seed наполняет базу демонстрационными данными: администратор,
// пользователи, два владельца, три магазина и набор оценок.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/magabrotheeeer/store-rating/internal/lib/password"
	"github.com/magabrotheeeer/store-rating/internal/models"
	"github.com/magabrotheeeer/store-rating/internal/storage/repository"
)

// Store — операции хранилища, нужные для наполнения.
type Store interface {
	Reset(ctx context.Context) error
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	CreateStore(ctx context.Context, store models.Store) (models.StoreWithOwner, error)
	CreateRating(ctx context.Context, rating models.Rating) (models.Rating, error)
	Dashboard(ctx context.Context) (models.AdminDashboard, error)
}

// Пароли демонстрационных учётных записей.
const (
	AdminPassword = "AdminPass123!"
	UserPassword  = "UserPass123!"
	OwnerPassword = "OwnerPass123!"
)

const extraUsers = 20

// ratingPlan — сколько попыток оценки сделать для магазина и как выбирать значение.
type ratingPlan struct {
	attempts int
	value    func(r *rand.Rand) int
}

// Run очищает базу и создаёт демонстрационные данные. Повторные оценки
// одного пользователя для того же магазина пропускаются.
func Run(ctx context.Context, st Store, rng *rand.Rand, log *slog.Logger) (models.AdminDashboard, error) {
	const op = "seed.Run"

	if err := st.Reset(ctx); err != nil {
		return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("cleared existing data")

	hashes := map[string]string{}
	for _, pw := range []string{AdminPassword, UserPassword, OwnerPassword} {
		h, err := password.Hash(pw)
		if err != nil {
			return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
		}
		hashes[pw] = h
	}

	newUser := func(name, email, pw, address string, role models.Role) (models.User, error) {
		return st.CreateUser(ctx, models.User{
			Name:         name,
			Email:        email,
			PasswordHash: hashes[pw],
			Address:      &address,
			Role:         role,
		})
	}

	if _, err := newUser("System Administrator Account", "admin@test.com", AdminPassword,
		"123 Admin Street, Admin City, AC 12345", models.RoleSystemAdmin); err != nil {
		return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	normal, err := newUser("Regular User Account For Testing", "user@test.com", UserPassword,
		"456 User Avenue, User Town, UT 54321", models.RoleNormalUser)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	owner1, err := newUser("Store Owner Account Number One", "owner@test.com", OwnerPassword,
		"789 Owner Boulevard, Owner City, OC 98765", models.RoleStoreOwner)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	owner2, err := newUser("Second Store Owner Account Here", "owner2@test.com", OwnerPassword,
		"101 Second Owner Street, Owner City, OC 11111", models.RoleStoreOwner)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
	}

	stores := []models.Store{
		{Name: "Tech Electronics Store", Email: "contact@techelectronics.com",
			Address: "123 Tech Street, Silicon Valley, CA 94000", OwnerID: owner1.ID},
		{Name: "Fashion Boutique Central", Email: "info@fashionboutique.com",
			Address: "456 Fashion Ave, New York, NY 10001", OwnerID: owner1.ID},
		{Name: "Home Goods Market Place", Email: "hello@homegoods.com",
			Address: "789 Home Street, Chicago, IL 60601", OwnerID: owner2.ID},
	}
	storeIDs := make([]string, 0, len(stores))
	for _, s := range stores {
		created, err := st.CreateStore(ctx, s)
		if err != nil {
			return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
		}
		storeIDs = append(storeIDs, created.ID)
	}
	log.Info("created demo stores", slog.Int("count", len(storeIDs)))

	extra := make([]models.User, 0, extraUsers)
	for i := 1; i <= extraUsers; i++ {
		u, err := newUser(
			fmt.Sprintf("Demo User Number %d For Testing Purposes", i),
			fmt.Sprintf("demo%d@test.com", i),
			UserPassword,
			fmt.Sprintf("%d Demo Street, Demo City, DC %d", 100+i, 10000+i),
			models.RoleNormalUser,
		)
		if err != nil {
			return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
		}
		extra = append(extra, u)
	}
	log.Info("created demo users", slog.Int("count", len(extra)+4))

	plans := []ratingPlan{
		{attempts: 120, value: func(r *rand.Rand) int {
			if r.Float64() < 0.8 {
				if r.Float64() < 0.6 {
					return 5
				}
				return 4
			}
			return 3
		}},
		{attempts: 89, value: func(r *rand.Rand) int {
			if r.Float64() < 0.7 {
				if r.Float64() < 0.5 {
					return 4
				}
				return 5
			}
			if r.Float64() < 0.5 {
				return 3
			}
			return 2
		}},
		{attempts: 67, value: func(r *rand.Rand) int {
			switch {
			case r.Float64() < 0.6:
				return 4
			case r.Float64() < 0.4:
				return 3
			case r.Float64() < 0.3:
				return 5
			default:
				return 2
			}
		}},
	}

	for i, plan := range plans {
		for n := 0; n < plan.attempts; n++ {
			userID := extra[n%len(extra)].ID
			if i == 0 && n == 0 {
				userID = normal.ID
			}
			_, err := st.CreateRating(ctx, models.Rating{
				UserID:  userID,
				StoreID: storeIDs[i],
				Value:   plan.value(rng),
			})
			if errors.Is(err, repository.ErrConflict) {
				continue
			}
			if err != nil {
				return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
			}
		}
	}

	d, err := st.Dashboard(ctx)
	if err != nil {
		return models.AdminDashboard{}, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("seed completed",
		slog.Int("users", d.TotalUsers),
		slog.Int("stores", d.TotalStores),
		slog.Int("ratings", d.TotalRatings),
	)
	return d, nil
}
