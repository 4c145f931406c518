package service

import (
	"errors"
	"log"
	"time"

	"vulnguard/database"
	"vulnguard/models"
	"vulnguard/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

// InitAdmin creates the default admin user if no users exist
func (s *UserService) InitAdmin() error {
	ctx, cancel := database.NewContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionUsers)

	count, err := collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	password := utils.GenerateInitialPassword()
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  "admin",
		Password:  hashedPassword,
		Role:      "admin",
		Status:    1,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := collection.InsertOne(ctx, admin); err != nil {
		return err
	}

	log.Printf("Created default admin user, initial password: %s", password)
	return nil
}

// Login authenticates user and returns JWT token
func (s *UserService) Login(username, password string) (string, *models.User, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	collection := database.GetCollection(models.CollectionUsers)

	var user models.User
	err := collection.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if err != nil {
		return "", nil, errors.New("invalid username or password")
	}

	if !utils.CheckPassword(password, user.Password) {
		return "", nil, errors.New("invalid username or password")
	}

	if user.Status != 1 {
		return "", nil, errors.New("user is disabled")
	}

	token, err := utils.GenerateToken(user.ID.Hex(), user.Username, user.Role)
	if err != nil {
		return "", nil, errors.New("failed to generate token")
	}

	// Update last login asynchronously
	go func() {
		ctx, cancel := database.NewContext()
		defer cancel()
		collection.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{"last_login": time.Now()}})
	}()

	return token, &user, nil
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	ctx, cancel := database.NewContext()
	defer cancel()

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, errors.New("invalid user ID")
	}

	var user models.User
	err = database.GetCollection(models.CollectionUsers).FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("user not found")
		}
		return nil, err
	}

	return &user, nil
}

// ChangePassword updates a user's password after verifying the old one
func (s *UserService) ChangePassword(userID, oldPassword, newPassword string) error {
	user, err := s.GetUserByID(userID)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(oldPassword, user.Password) {
		return errors.New("incorrect password")
	}

	hashedPassword, err := utils.HashPassword(newPassword)
	if err != nil {
		return errors.New("failed to hash password")
	}

	ctx, cancel := database.NewContext()
	defer cancel()

	_, err = database.GetCollection(models.CollectionUsers).UpdateOne(
		ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"password": hashedPassword, "updated_at": time.Now()}},
	)
	return err
}
