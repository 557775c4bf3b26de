package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tii-its/coffee-fund-app/internal/database"
	"github.com/tii-its/coffee-fund-app/internal/models"
)

const userCacheTTL = time.Hour

func userCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("user:%s", id)
}

// FindUserByID loads a user, going through the redis cache when one is
// configured.
func FindUserByID(userID uuid.UUID) (models.User, error) {
	cacheKey := userCacheKey(userID)
	if database.RedisClient != nil {
		val, err := database.RedisClient.Get(database.Ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return user, nil
			}
		}
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}

	if database.RedisClient != nil {
		if data, err := json.Marshal(user); err == nil {
			database.RedisClient.Set(database.Ctx, cacheKey, data, userCacheTTL)
		}
	}

	return user, nil
}

func invalidateUserCache(userID uuid.UUID) {
	if database.RedisClient != nil {
		database.RedisClient.Del(database.Ctx, userCacheKey(userID))
	}
}

// FindUsers retrieves a paginated list of users.
func FindUsers(activeOnly bool, skip, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	query := database.DB.Model(&models.User{}).Where("is_deleted = ?", false)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if limit <= 0 {
		limit = 100
	}

	if err := query.Order("display_name asc").Offset(skip).Limit(limit).Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// CreateUser adds a user to the directory. Admin-gated at the transport
// layer; the actor is recorded in the audit trail.
func CreateUser(displayName, email string, role models.Role, actorID uuid.UUID) (*models.User, error) {
	if !role.Valid() {
		role = models.RoleUser
	}

	var existing models.User
	err := database.DB.
		Where("display_name = ? OR email = ?", displayName, email).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateUser
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{
		DisplayName: displayName,
		Email:       email,
		Role:        role,
		IsActive:    true,
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionCreate, models.EntityUser, user.ID, map[string]interface{}{
			"display_name": displayName,
			"role":         string(role),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UserUpdate carries the mutable directory fields. Nil pointers are left
// untouched.
type UserUpdate struct {
	DisplayName *string
	Email       *string
	QRCode      *string
	Role        *models.Role
	IsActive    *bool
}

// UpdateUser applies the given changes. Demoting or deactivating the last
// remaining admin is refused so the system cannot lock itself out.
func UpdateUser(id uuid.UUID, update UserUpdate, actorID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := database.DB.First(&user, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if update.DisplayName != nil {
		updates["display_name"] = *update.DisplayName
	}
	if update.Email != nil {
		updates["email"] = *update.Email
	}
	if update.QRCode != nil {
		updates["qr_code"] = *update.QRCode
	}
	if update.Role != nil {
		if !update.Role.Valid() {
			return nil, fmt.Errorf("unknown role %q", *update.Role)
		}
		updates["role"] = *update.Role
	}
	if update.IsActive != nil {
		updates["is_active"] = *update.IsActive
	}

	demotesAdmin := user.Role == models.RoleAdmin &&
		((update.Role != nil && *update.Role != models.RoleAdmin) ||
			(update.IsActive != nil && !*update.IsActive))
	if demotesAdmin {
		last, err := isLastAdmin(user.ID)
		if err != nil {
			return nil, err
		}
		if last {
			return nil, ErrLastAdmin
		}
	}

	if len(updates) == 0 {
		return &user, nil
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return err
		}
		_, err := RecordAction(tx, actorID, models.ActionUpdate, models.EntityUser, user.ID, auditMeta(updates))
		return err
	})
	if err != nil {
		return nil, err
	}

	invalidateUserCache(id)

	if err := database.DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user under the dependents-aware policy: a user
// with no consumptions, money moves or audit entries is hard-deleted.
// One with history is refused with the blocking relations named, unless
// force is set, which degrades to an irreversible soft delete. The last
// remaining admin is never deletable either way.
func DeleteUser(id uuid.UUID, actorID uuid.UUID, force bool) error {
	var user models.User
	if err := database.DB.First(&user, "id = ? AND is_deleted = ?", id, false).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Role == models.RoleAdmin {
		last, err := isLastAdmin(user.ID)
		if err != nil {
			return err
		}
		if last {
			return ErrLastAdmin
		}
	}

	blocking, err := dependentRelations(id)
	if err != nil {
		return err
	}

	if len(blocking) == 0 {
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
				return err
			}
			_, err := RecordAction(tx, actorID, models.ActionDelete, models.EntityUser, id, map[string]interface{}{
				"mode": "hard",
			})
			return err
		})
		if err != nil {
			return err
		}
		invalidateUserCache(id)
		return nil
	}

	if !force {
		return fmt.Errorf("%w: %s", ErrUserHasRecords, strings.Join(blocking, ", "))
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.User{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{"is_active": false, "is_deleted": true})
		if result.Error != nil {
			return result.Error
		}
		_, err := RecordAction(tx, actorID, models.ActionDelete, models.EntityUser, id, map[string]interface{}{
			"mode":     "soft",
			"blocking": strings.Join(blocking, ", "),
		})
		return err
	})
	if err != nil {
		return err
	}

	invalidateUserCache(id)
	return nil
}

// dependentRelations names each relation that still references the user.
func dependentRelations(id uuid.UUID) ([]string, error) {
	var blocking []string

	var consumptions int64
	err := database.DB.Model(&models.Consumption{}).
		Where("user_id = ? OR created_by = ?", id, id).
		Count(&consumptions).Error
	if err != nil {
		return nil, err
	}
	if consumptions > 0 {
		blocking = append(blocking, "consumptions")
	}

	var moves int64
	err = database.DB.Model(&models.MoneyMove{}).
		Where("user_id = ? OR created_by = ? OR confirmed_by = ?", id, id, id).
		Count(&moves).Error
	if err != nil {
		return nil, err
	}
	if moves > 0 {
		blocking = append(blocking, "money_moves")
	}

	var audits int64
	err = database.DB.Model(&models.AuditEntry{}).
		Where("actor_id = ?", id).
		Count(&audits).Error
	if err != nil {
		return nil, err
	}
	if audits > 0 {
		blocking = append(blocking, "audit_entries")
	}

	return blocking, nil
}

// isLastAdmin reports whether the given user is the only remaining
// active admin.
func isLastAdmin(id uuid.UUID) (bool, error) {
	var others int64
	err := database.DB.Model(&models.User{}).
		Where("role = ? AND is_active = ? AND is_deleted = ? AND id <> ?",
			models.RoleAdmin, true, false, id).
		Count(&others).Error
	if err != nil {
		return false, err
	}
	return others == 0, nil
}

func auditMeta(updates map[string]interface{}) map[string]interface{} {
	meta := make(map[string]interface{}, len(updates))
	for k, v := range updates {
		meta[k] = v
	}
	return meta
}
