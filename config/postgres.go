package config

import (
	"Pineapple/models/postgres"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM() (*gorm.DB, error) {
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	host := os.Getenv("POSTGRES_HOST")
	port := os.Getenv("POSTGRES_PORT")
	database := os.Getenv("POSTGRES_DATABASE")
	verbose := os.Getenv("VERBOSE_POSTGRES")

	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s",
		user, password, host, port, database)

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Printf("Error connecting to PostgreSQL: %v", err)
		return nil, err
	}

	gormConfig := &gorm.Config{}
	if verbose == "true" {
		newLogger := logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Info,
				IgnoreRecordNotFoundError: false,
				Colorful:                  true,
			},
		)
		gormConfig.Logger = newLogger
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), gormConfig)
	if err != nil {
		log.Printf("Error connecting to PostgreSQL with GORM: %v", err)
		return nil, err
	}

	// Verify connection and tune the pool on the underlying SQL DB
	underlying, err := db.DB()
	if err != nil {
		log.Printf("Error getting underlying SQL DB: %v", err)
		return nil, err
	}

	if err := underlying.Ping(); err != nil {
		log.Printf("Error pinging PostgreSQL: %v", err)
		return nil, err
	}

	underlying.SetMaxIdleConns(10)
	underlying.SetMaxOpenConns(100)
	underlying.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL with GORM")
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database
func MigrateDatabase(db *gorm.DB) error {
	err := db.AutoMigrate(
		postgres.Player{},
		postgres.Room{},
		postgres.RoomPlayer{},
		postgres.Card{},
		postgres.GameDeck{},
		postgres.TurnLog{},
		postgres.KickVote{},
		postgres.CardSuggestion{})

	if err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	log.Println("PostgreSQL database migrated successfully")

	return seedBaseCards(db)
}

// seedBaseCards installs the core card pool on a fresh database. A catalog
// with any cards at all is left untouched; admins curate from there.
func seedBaseCards(db *gorm.DB) error {
	var count int64
	if err := db.Model(&postgres.Card{}).Count(&count).Error; err != nil {
		return fmt.Errorf("card count failed: %w", err)
	}
	if count > 0 {
		return nil
	}

	cards := []postgres.Card{
		{CardType: postgres.CardTypeTruth, CardText: "What is the most embarrassing thing you have done this year?", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeTruth, CardText: "Which player here would you trade lives with, and why?", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeTruth, CardText: "What is a secret talent nobody in this room knows about?", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeTruth, CardText: "What was your worst date ever?", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeDare, CardText: "Speak in an accent chosen by the group until your next turn.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeDare, CardText: "Let the player to your left post anything they want from your phone.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeDare, CardText: "Do your best impression of another player until someone guesses who.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeDare, CardText: "Dance with no music for 30 seconds.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeChallenge, CardText: "Name 10 animals in 15 seconds.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeChallenge, CardText: "Hold a plank while the group counts to 20.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeChallenge, CardText: "Say the alphabet backwards without mistakes.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeGroup, CardText: "Everyone points at the player most likely to become famous.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeGroup, CardText: "Everyone swaps seats with the player across from them.", Expansion: "core", IsActive: true},
		{CardType: postgres.CardTypeGroup, CardText: "The last player to touch the floor picks the next card type.", Expansion: "core", IsActive: true},
	}

	if err := db.Create(&cards).Error; err != nil {
		return fmt.Errorf("card seed failed: %w", err)
	}
	log.Printf("Seeded %d core cards", len(cards))
	return nil
}
