package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salongo/internal/config"
	dbpkg "github.com/BruksfildServices01/salongo/internal/db"
	"github.com/BruksfildServices01/salongo/internal/domain/role"
	"github.com/BruksfildServices01/salongo/internal/logger"
	"github.com/BruksfildServices01/salongo/internal/models"
)

const ownerEmail = "owner@example.com"

type salonSeed struct {
	name     string
	location string
	rating   float64
}

var salons = []salonSeed{
	{"GlowUp Unisex Salon", "Hyderabad, Banjara Hills", 4.7},
	{"Urban Style Studio", "Hyderabad, Jubilee Hills", 4.5},
	{"Royal Spa & Salon", "Hyderabad, Gachibowli", 4.8},
	{"Mirror Mirror Salon", "Hyderabad, Kukatpally", 4.6},
	{"The Barber Shop", "Hyderabad, Madhapur", 4.4},
	{"Style & Smile", "Hyderabad, Secunderabad", 4.3},
	{"Luxury Locks", "Hyderabad, Kondapur", 4.9},
	{"Budget Cuts", "Hyderabad, Ameerpet", 4.1},

	{"Silicon Cuts", "Bengaluru, Koramangala", 4.7},
	{"Garden City Spa", "Bengaluru, Indiranagar", 4.5},
	{"Techie Trims", "Bengaluru, Whitefield", 4.4},
	{"Velvet Touch", "Bengaluru, HSR Layout", 4.6},

	{"Bollywood Blush", "Mumbai, Bandra", 4.8},
	{"Marine Drive Makeup", "Mumbai, Colaba", 4.7},
	{"Gateway Grooming", "Mumbai, Andheri", 4.5},
	{"Elite Cuts", "Mumbai, Juhu", 4.9},

	{"Capital Coiffure", "Delhi, Connaught Place", 4.6},
	{"Red Fort Refinement", "Delhi, Saket", 4.5},
	{"Chandni Chowk Charms", "Delhi, Hauz Khas", 4.4},
	{"Lutyens Luxe", "Delhi, Rohini", 4.8},

	{"Oxford Styles", "Pune, Koregaon Park", 4.7},
	{"Maratha Makeovers", "Pune, Kothrud", 4.6},
	{"IT Hub Cuts", "Pune, Hinjewadi", 4.5},
	{"Deccan Dazzle", "Pune, Viman Nagar", 4.4},
}

var workers = []struct{ name, label string }{
	{"Rahul Sharma", "Senior Stylist"},
	{"Priya Singh", "Makeup Artist"},
	{"Amit Patel", "Hair Specialist"},
	{"Suresh Kumar", "Master Barber"},
	{"Anjali Devi", "Skin Specialist"},
	{"Vikram Singh", "Massage Therapist"},
}

var services = []models.Service{
	{Name: "Classic Fade Cut", Price: 350, Category: "Hair"},
	{Name: "Crew Cut", Price: 250, Category: "Hair"},
	{Name: "Bob Cut", Price: 450, Category: "Hair"},
	{Name: "Long Layers", Price: 600, Category: "Hair"},
	{Name: "Undercut", Price: 400, Category: "Hair"},
	{Name: "Fruit Facial", Price: 700, Category: "Facial"},
	{Name: "Party Makeup", Price: 2500, Category: "Makeup"},
	{Name: "Gel Manicure", Price: 900, Category: "Nails"},
	{Name: "Aromatherapy Massage", Price: 1800, Duration: 60, Category: "Spa"},
	{Name: "Deep Tissue Massage", Price: 2200, Duration: 60, Category: "Spa"},
	{Name: "Swedish Massage", Price: 1500, Duration: 60, Category: "Spa"},
	{Name: "Foot Reflexology", Price: 600, Category: "Spa"},
	{Name: "Hot Stone Therapy", Price: 3000, Duration: 90, Category: "Spa"},
	{Name: "Head & Shoulder Massage", Price: 800, Category: "Spa"},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		l := logger.New(logger.Config{})
		l.Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database")
	}
	if err := dbpkg.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	if err := seed(db, log); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

// seed is a no-op when the demo owner already exists.
func seed(db *gorm.DB, log zerolog.Logger) error {
	var existing models.User
	err := db.Where("email = ?", ownerEmail).First(&existing).Error
	if err == nil {
		log.Info().Msg("demo data already present")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		owner := models.User{
			Name:            "John Owner",
			Email:           ownerEmail,
			Phone:           "9876543210",
			PasswordHash:    string(hash),
			Role:            role.Owner,
			ProfileComplete: true,
		}
		if err := tx.Create(&owner).Error; err != nil {
			return err
		}

		for i, s := range salons {
			salon := models.Salon{
				Name:      s.name,
				Location:  s.location,
				Rating:    s.rating,
				OpenTime:  "09:00",
				CloseTime: "21:00",
				IsOpen:    true,
			}
			// the demo owner runs the first salon
			if i == 0 {
				salon.OwnerID = &owner.ID
			}
			if err := tx.Create(&salon).Error; err != nil {
				return err
			}

			// three to five workers, rotating through the roster
			for j := 0; j < 3+i%3; j++ {
				w := workers[(i+j)%len(workers)]
				if err := tx.Create(&models.Worker{
					Name:     w.name,
					Role:     w.label,
					Phone:    fmt.Sprintf("98765%02d%03d", i, j),
					ImageURL: "https://i.pravatar.cc/150?u=" + strings.ReplaceAll(w.name, " ", ""),
					SalonID:  salon.ID,
				}).Error; err != nil {
					return err
				}
			}

			list := make([]models.Service, len(services))
			for k, svc := range services {
				svc.SalonID = salon.ID
				if svc.Duration == 0 {
					svc.Duration = 30
				}
				list[k] = svc
			}
			if err := tx.Create(&list).Error; err != nil {
				return err
			}
		}

		log.Info().Int("salons", len(salons)).Str("owner", ownerEmail).Msg("demo data seeded")
		return nil
	})
}
