package config

import (
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/planroomhq/planroom-server/models"
	"github.com/planroomhq/planroom-server/secure"
)

var DB *gorm.DB

// ConnectDB opens the PostgreSQL connection and migrates the schema.
func ConnectDB() {
	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbName, port)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.Room{},
		&models.UserRoom{},
		&models.Plan{},
		&models.Waypoint{},
		&models.ExportJob{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}

	DB = db
	log.Println("Connected to PostgreSQL & migrated successfully")
}

// SecureCodec builds the encryption codec for secure columns from
// SECURE_KEY and SECURE_SALT.
func SecureCodec() (*secure.Codec, error) {
	key := os.Getenv("SECURE_KEY")
	salt := os.Getenv("SECURE_SALT")
	if key == "" || salt == "" {
		return nil, errors.New("SECURE_KEY and SECURE_SALT must be set")
	}
	return secure.NewCodec(secure.DeriveKey([]byte(key), []byte(salt)))
}

// SigningSecret is the key shared with trusted clients for signed login
// requests.
func SigningSecret() []byte {
	return []byte(os.Getenv("SIGNING_SECRET"))
}

// ExportDir is where finished export files are written.
func ExportDir() string {
	if dir := os.Getenv("EXPORT_DIR"); dir != "" {
		return dir
	}
	return "./exports"
}
