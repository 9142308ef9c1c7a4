// Command seed fills a development database with customers and
// professionals and prints a bearer token for each account.
package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"

	"github.com/renjoshini/hereforyou/config"
	"github.com/renjoshini/hereforyou/database"
	professionalRepo "github.com/renjoshini/hereforyou/database/repository/professional"
	userRepo "github.com/renjoshini/hereforyou/database/repository/user"
	"github.com/renjoshini/hereforyou/models"
	"github.com/renjoshini/hereforyou/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	config.LoadConfig()
	if config.IsProduction() {
		log.Fatal("refusing to seed a production database")
	}

	database.InitDB()
	db := database.Database()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, name := range []string{"users", "professionals", "bookings"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s collection: %v", name, err)
		}
	}

	users := userRepo.NewMongoUserRepo(db)
	professionals := professionalRepo.NewMongoProfessionalRepo(db)

	// Fixed centre for simulation (Bangalore).
	centreLat, centreLng := 12.9716, 77.5946
	perService := 2

	for i := 1; i <= 3; i++ {
		u := &models.User{
			ID:    uuid.New().String(),
			Name:  fmt.Sprintf("Customer %d", i),
			Email: fmt.Sprintf("customer%d@example.com", i),
			Phone: fmt.Sprintf("98%08d", i),
		}
		fmt.Printf("customer %s token=%s\n", u.ID, issue(users, u))
	}

	n := 0
	for _, service := range models.ServiceCategories {
		for i := 0; i < perService; i++ {
			n++
			u := &models.User{
				ID:    uuid.New().String(),
				Name:  fmt.Sprintf("%s pro %d", service, i+1),
				Email: fmt.Sprintf("pro%d@example.com", n),
				Phone: fmt.Sprintf("97%08d", n),
			}
			token := issue(users, u)

			// Random point within ~5 km of the centre.
			distanceKm := rand.Float64() * 5
			angle := rand.Float64() * 2 * math.Pi
			p := &models.Professional{
				ID:       uuid.New().String(),
				UserID:   u.ID,
				Services: []models.ServiceCategory{service},
				Pricing: models.ProfessionalPricing{
					HourlyRate:    float64(200 + 50*rand.IntN(8)),
					MinimumCharge: 200,
					Currency:      "INR",
				},
				Availability: models.ProfessionalSchedule{
					WorkingDays:  []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday"},
					WorkingHours: models.WorkingHours{Start: "09:00", End: "18:00"},
					IsAvailable:  true,
				},
				Location: models.ProfessionalLocation{
					City: "Bangalore",
					Coordinates: &models.Coordinates{
						Latitude:  centreLat + distanceKm*0.009*math.Sin(angle),
						Longitude: centreLng + distanceKm*0.00922*math.Cos(angle),
					},
					ServiceRadius: 10,
				},
				IsActive: true,
			}
			if err := professionals.Create(ctx, p); err != nil {
				log.Fatalf("Failed to create professional: %v", err)
			}
			fmt.Printf("professional %s (%s) token=%s\n", p.ID, service, token)
		}
	}

	fmt.Println("Seed complete.")
}

// issue creates the user, signs an access token and stores its hash.
func issue(users userRepo.UserRepository, u *models.User) string {
	if err := users.Create(u); err != nil {
		log.Fatalf("Failed to create user %s: %v", u.Email, err)
	}
	token, err := utils.GenerateToken(u.ID, u.Email, utils.AccessTokenTTL)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	if err := users.SetTokenHash(u.ID, utils.HashToken(token)); err != nil {
		log.Fatalf("Failed to store token hash: %v", err)
	}
	return token
}
