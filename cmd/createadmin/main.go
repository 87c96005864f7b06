package main

import (
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"

	"github.com/qs3c/blog_go_server/config"
	"github.com/qs3c/blog_go_server/internal/database"
	"github.com/qs3c/blog_go_server/internal/model"
	"github.com/qs3c/blog_go_server/internal/repository"
)

// 管理员账号不走注册接口，由该命令直接写库创建。
// 用法: createadmin -username admin -email admin@example.com -password 'xxx'
func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email")
	password := flag.String("password", "", "admin password")
	firstName := flag.String("first-name", "Admin", "admin first name")
	configPath := flag.String("config", "config.yaml", "config file path")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("username, email and password are required")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)

	exists, err := userRepo.ExistsByUsername(*username)
	if err != nil {
		log.Fatalf("Failed to check username: %v", err)
	}
	if exists {
		log.Fatalf("Username %q already taken", *username)
	}

	exists, err = userRepo.ExistsByEmail(*email)
	if err != nil {
		log.Fatalf("Failed to check email: %v", err)
	}
	if exists {
		log.Fatalf("Email %q already registered", *email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	admin := &model.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hash),
		FirstName:    *firstName,
		Role:         model.RoleAdmin,
	}

	if err := userRepo.Create(admin); err != nil {
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Admin user %q created with id %d", admin.Username, admin.ID)
}
