package controllers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	config "github.com/eventhive/eventhive-go/config"
	middleware "github.com/eventhive/eventhive-go/middleware"
	models "github.com/eventhive/eventhive-go/models"
	utils "github.com/eventhive/eventhive-go/utils"
)

// ---------------- SIGNUP ----------------
func Signup(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			FirstName       string `json:"firstName"`
			LastName        string `json:"lastName"`
			UserName        string `json:"userName"`
			Email           string `json:"email"`
			Password        string `json:"password"`
			ConfirmPassword string `json:"confirm_password"`
			PhoneNumber     string `json:"phoneNumber"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		if input.FirstName == "" || input.LastName == "" || input.UserName == "" ||
			input.Email == "" || input.Password == "" || input.ConfirmPassword == "" {
			utils.Error(c, http.StatusBadRequest, "All fields are required")
			return
		}

		if input.ConfirmPassword != input.Password {
			utils.Error(c, http.StatusBadRequest, "Passwords do not match")
			return
		}

		userName := strings.ToLower(strings.TrimSpace(input.UserName))
		email := strings.ToLower(strings.TrimSpace(input.Email))
		phone := strings.TrimSpace(input.PhoneNumber)

		if phone != "" {
			if err := utils.VerifyPhoneNumber(phone); err != nil {
				if errors.Is(err, utils.ErrInvalidPhoneNumber) {
					utils.Error(c, http.StatusBadRequest, "Enter a valid mobile number")
				} else {
					utils.Error(c, http.StatusInternalServerError, "Failed to validate phone number")
				}
				return
			}
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		// --- Check duplicates ---
		dup := []bson.M{{"user_name": userName}, {"email": email}}
		if phone != "" {
			dup = append(dup, bson.M{"phone_number": phone})
		}
		count, err := col.CountDocuments(ctx, bson.M{"$or": dup})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not check existing users")
			return
		}
		if count > 0 {
			utils.Error(c, http.StatusBadRequest, "User already exists")
			return
		}

		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not hash password")
			return
		}

		now := time.Now()
		user := models.User{
			ID:            primitive.NewObjectID(),
			FirstName:     strings.TrimSpace(input.FirstName),
			LastName:      strings.TrimSpace(input.LastName),
			UserName:      userName,
			Email:         email,
			PhoneNumber:   phone,
			Password:      hashed,
			Role:          models.RoleUser,
			OwnerCode:     nil,
			PinnedEvents:  []primitive.ObjectID{},
			CreatedEvents: []primitive.ObjectID{},
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		if _, err := col.InsertOne(ctx, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.Error(c, http.StatusBadRequest, "User already exists")
				return
			}
			utils.Error(c, http.StatusInternalServerError, "Could not create user")
			return
		}

		token, err := utils.CreateToken(cfg.JWTSecret, cfg.JWTExpiry, &user)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not create session token")
			return
		}
		utils.SetAuthCookie(c, token, cfg.JWTExpiry)

		utils.Respond(c, http.StatusCreated, user, "User registered successfully")
	}
}

// ---------------- LOGIN ----------------
func Login(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email     string `json:"email"`
			Password  string `json:"password"`
			OwnerCode string `json:"ownerCode"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		if input.Email == "" || input.Password == "" {
			utils.Error(c, http.StatusBadRequest, "Required field is missing ( email, password )")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		// Owners authenticate with a second factor: the ownership code issued
		// at role switch.
		if user.Role == models.RoleOwner {
			if input.OwnerCode == "" {
				utils.Error(c, http.StatusBadRequest, "Owner code is required")
				return
			}
			if user.OwnerCode == nil || !utils.CheckPassword(*user.OwnerCode, input.OwnerCode) {
				utils.Error(c, http.StatusUnauthorized, "Invalid owner code")
				return
			}
		}

		if !utils.CheckPassword(user.Password, input.Password) {
			utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := utils.CreateToken(cfg.JWTSecret, cfg.JWTExpiry, &user)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not create session token")
			return
		}
		utils.SetAuthCookie(c, token, cfg.JWTExpiry)

		utils.Respond(c, http.StatusOK, user, "User logged in successfully")
	}
}

// ---------------- LOGOUT ----------------
func Logout(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		utils.ClearAuthCookie(c)
		utils.Respond(c, http.StatusOK, user, "User logged out successfully")
	}
}

// ---------------- UPDATE PROFILE ----------------
func UpdateProfile(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		var input struct {
			FirstName   string `form:"firstName"`
			LastName    string `form:"lastName"`
			UserName    string `form:"userName"`
			Email       string `form:"email"`
			PhoneNumber string `form:"phoneNumber"`
			Password    string `form:"password"`
		}

		if err := c.ShouldBind(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		// Fetch with password for re-verification.
		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": current.ID}).Decode(&user); err != nil {
			utils.Error(c, http.StatusNotFound, "User not found")
			return
		}

		newUserName := strings.ToLower(strings.TrimSpace(input.UserName))
		newEmail := strings.ToLower(strings.TrimSpace(input.Email))
		newPhone := strings.TrimSpace(input.PhoneNumber)

		userNameChanged := newUserName != "" && newUserName != user.UserName
		emailChanged := newEmail != "" && newEmail != user.Email
		phoneChanged := newPhone != "" && newPhone != user.PhoneNumber

		// Changing an identifying field requires the current password.
		if userNameChanged || emailChanged || phoneChanged {
			if input.Password == "" {
				utils.Error(c, http.StatusBadRequest, "Password is required to change email, username or phone number")
				return
			}
			if !utils.CheckPassword(user.Password, input.Password) {
				utils.Error(c, http.StatusUnauthorized, "Invalid password")
				return
			}

			var taken []bson.M
			if userNameChanged {
				taken = append(taken, bson.M{"user_name": newUserName})
			}
			if emailChanged {
				taken = append(taken, bson.M{"email": newEmail})
			}
			if phoneChanged {
				taken = append(taken, bson.M{"phone_number": newPhone})
			}
			count, err := col.CountDocuments(ctx, bson.M{
				"_id": bson.M{"$ne": user.ID},
				"$or": taken,
			})
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Could not check existing users")
				return
			}
			if count > 0 {
				utils.Error(c, http.StatusBadRequest, "Email, username or phone number already in use")
				return
			}
		}

		if phoneChanged {
			if err := utils.VerifyPhoneNumber(newPhone); err != nil {
				if errors.Is(err, utils.ErrInvalidPhoneNumber) {
					utils.Error(c, http.StatusBadRequest, "Enter a valid mobile number")
				} else {
					utils.Error(c, http.StatusInternalServerError, "Failed to validate phone number")
				}
				return
			}
		}

		update := bson.M{"updated_at": time.Now()}
		if input.FirstName != "" {
			update["first_name"] = strings.TrimSpace(input.FirstName)
		}
		if input.LastName != "" {
			update["last_name"] = strings.TrimSpace(input.LastName)
		}
		if userNameChanged {
			update["user_name"] = newUserName
		}
		if emailChanged {
			update["email"] = newEmail
		}
		if phoneChanged {
			update["phone_number"] = newPhone
		}

		// --- Optional picture upload ---
		if fileHeader, err := c.FormFile("picture"); err == nil {
			file, err := fileHeader.Open()
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to open picture")
				return
			}
			url, err := utils.UploadProfilePicture(file, fileHeader)
			file.Close()
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Picture upload failed")
				return
			}
			update["picture"] = url
		}

		if len(update) == 1 {
			utils.Error(c, http.StatusBadRequest, "No fields to update")
			return
		}

		if _, err := col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": update}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				utils.Error(c, http.StatusBadRequest, "Email, username or phone number already in use")
				return
			}
			utils.Error(c, http.StatusInternalServerError, "Could not update profile")
			return
		}

		var updated models.User
		err := col.FindOne(ctx, bson.M{"_id": user.ID},
			options.FindOne().SetProjection(bson.M{"password": 0})).Decode(&updated)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to retrieve updated profile")
			return
		}

		utils.Respond(c, http.StatusOK, updated, "User profile updated")
	}
}

// ---------------- UPDATE PASSWORD ----------------
func UpdatePassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		var input struct {
			OldPassword string `json:"oldPassword"`
			NewPassword string `json:"newPassword"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.OldPassword == "" || input.NewPassword == "" {
			utils.Error(c, http.StatusBadRequest, "Required field is missing ( oldPassword, newPassword )")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": current.ID}).Decode(&user); err != nil {
			utils.Error(c, http.StatusNotFound, "User not found")
			return
		}

		if !utils.CheckPassword(user.Password, input.OldPassword) {
			utils.Error(c, http.StatusUnauthorized, "Invalid old password")
			return
		}
		if utils.CheckPassword(user.Password, input.NewPassword) {
			utils.Error(c, http.StatusBadRequest, "New password must be different from the old password")
			return
		}

		hashed, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not hash password")
			return
		}

		_, err = col.UpdateOne(ctx, bson.M{"_id": user.ID},
			bson.M{"$set": bson.M{"password": hashed, "updated_at": time.Now()}})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not update password")
			return
		}

		utils.Respond(c, http.StatusOK, nil, "Password updated successfully")
	}
}

// ---------------- DELETE ACCOUNT ----------------
func DeleteAccount(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		current, ok := middleware.CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Please login to continue")
			return
		}

		var input struct {
			Password string `json:"password"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.Password == "" {
			utils.Error(c, http.StatusBadRequest, "Password is required")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := col.FindOne(ctx, bson.M{"_id": current.ID}).Decode(&user); err != nil {
			utils.Error(c, http.StatusNotFound, "User not found")
			return
		}

		if !utils.CheckPassword(user.Password, input.Password) {
			utils.Error(c, http.StatusUnauthorized, "Invalid password")
			return
		}

		if _, err := col.DeleteOne(ctx, bson.M{"_id": user.ID}); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not delete account")
			return
		}

		utils.ClearAuthCookie(c)
		utils.Respond(c, http.StatusOK, nil, "Account deleted successfully")
	}
}

// ---------------- FORGOT PASSWORD (OTP) ----------------
func ForgotPassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email string `json:"email"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.Email == "" {
			utils.Error(c, http.StatusBadRequest, "Email is required")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
		if err != nil {
			utils.Error(c, http.StatusNotFound, "User not found")
			return
		}
		if user.PhoneNumber == "" {
			utils.Error(c, http.StatusBadRequest, "No phone number registered for this account")
			return
		}

		code, err := utils.GenerateNumericCode(6)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not generate OTP")
			return
		}
		hashedCode, err := utils.HashPassword(code)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not generate OTP")
			return
		}

		_, err = col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": bson.M{
			"reset_otp":        hashedCode,
			"reset_otp_expiry": time.Now().Add(10 * time.Minute),
			"updated_at":       time.Now(),
		}})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not store OTP")
			return
		}

		if err := utils.SendOTP(user.PhoneNumber, code); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to send OTP")
			return
		}

		utils.Respond(c, http.StatusOK, nil, "OTP sent to registered phone number")
	}
}

// ---------------- RESET PASSWORD (OTP) ----------------
func ResetPassword(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input struct {
			Email       string `json:"email"`
			OTP         string `json:"otp"`
			NewPassword string `json:"newPassword"`
		}

		if err := c.ShouldBindJSON(&input); err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.Email == "" || input.OTP == "" || input.NewPassword == "" {
			utils.Error(c, http.StatusBadRequest, "Required field is missing ( email, otp, newPassword )")
			return
		}

		col := cfg.MongoClient.Database(cfg.DBName).Collection("users")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var user models.User
		err := col.FindOne(ctx, bson.M{"email": strings.ToLower(strings.TrimSpace(input.Email))}).Decode(&user)
		if err != nil {
			utils.Error(c, http.StatusNotFound, "User not found")
			return
		}

		if user.ResetOTP == "" || time.Now().After(user.ResetOTPExpiry) {
			utils.Error(c, http.StatusBadRequest, "OTP expired or not requested")
			return
		}
		if !utils.CheckPassword(user.ResetOTP, input.OTP) {
			utils.Error(c, http.StatusUnauthorized, "Invalid OTP")
			return
		}

		hashed, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not hash password")
			return
		}

		_, err = col.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{
			"$set":   bson.M{"password": hashed, "updated_at": time.Now()},
			"$unset": bson.M{"reset_otp": "", "reset_otp_expiry": ""},
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Could not reset password")
			return
		}

		utils.Respond(c, http.StatusOK, nil, "Password reset successfully")
	}
}
