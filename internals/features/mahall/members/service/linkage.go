// internals/features/mahall/members/service/linkage.go
//
// Penjaga konsistensi Member ↔ user role member. Relasinya back-reference:
// user menyimpan user_member_id, member tidak menyimpan apa pun — lookup
// selalu lewat (user_member_id, user_role='member'). Cascade hanya berlaku
// untuk role member; role lain tidak punya tautan.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"mahallku_backend/internals/constants"
	memberModel "mahallku_backend/internals/features/mahall/members/model"
	userModel "mahallku_backend/internals/features/users/user/model"
)

var (
	ErrMemberNotFound      = errors.New("member tidak ditemukan")
	ErrUserNotFound        = errors.New("user tidak ditemukan")
	ErrTenantMismatch      = errors.New("member milik tenant lain")
	ErrMemberAlreadyLinked = errors.New("member sudah punya akun")
	ErrPhoneTaken          = errors.New("phone sudah terdaftar di tenant ini")
	ErrInvalidStatus       = errors.New("status tidak dikenal")
)

type LinkageService struct {
	DB *gorm.DB
}

func NewLinkageService(db *gorm.DB) *LinkageService {
	return &LinkageService{DB: db}
}

// CreateMemberUserInput: field akun yang datang dari request.
// Phone kosong → disalin dari member. Permission nil → default view-only.
type CreateMemberUserInput struct {
	FullName     string
	Phone        string
	PasswordHash string
	CanView      *bool
	CanAdd       *bool
	CanEdit      *bool
	CanDelete    *bool
}

// CreateMemberUser membuat akun role member untuk satu Member.
// Semua pemeriksaan gagal SEBELUM ada tulisan — tidak ada user setengah jadi.
func (s *LinkageService) CreateMemberUser(ctx context.Context, targetTenant uuid.UUID, memberID uuid.UUID, in CreateMemberUserInput) (*userModel.UserModel, error) {
	db := s.DB.WithContext(ctx)

	var member memberModel.MemberModel
	if err := db.Where("member_id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if member.MemberTenantID != targetTenant {
		return nil, ErrTenantMismatch
	}

	// sudah ada akun member untuk member ini?
	var count int64
	if err := db.Model(&userModel.UserModel{}).
		Where("user_member_id = ? AND user_role = ?", memberID, constants.RoleMember).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrMemberAlreadyLinked
	}

	// phone efektif: eksplisit dari request, fallback ke phone member
	phone := in.Phone
	if phone == "" {
		phone = member.MemberPhone
	}
	if err := db.Model(&userModel.UserModel{}).
		Where("user_tenant_id = ? AND user_phone = ?", targetTenant, phone).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrPhoneTaken
	}

	user := userModel.UserModel{
		UserFullName: in.FullName,
		UserPhone:    phone,
		UserPassword: in.PasswordHash,
		UserRole:     constants.RoleMember,
		UserStatus:   userModel.UserStatusActive,
		UserTenantID: &targetTenant,
		UserMemberID: &memberID,
		UserCanView:  true,
	}
	if user.UserFullName == "" {
		user.UserFullName = member.MemberName
	}
	if in.CanView != nil {
		user.UserCanView = *in.CanView
	}
	if in.CanAdd != nil {
		user.UserCanAdd = *in.CanAdd
	}
	if in.CanEdit != nil {
		user.UserCanEdit = *in.CanEdit
	}
	if in.CanDelete != nil {
		user.UserCanDelete = *in.CanDelete
	}

	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMemberStatus menyimpan status member lalu cascade ke akun
// tertautnya: inactive/deleted → akun inactive, active → akun active.
// Tanpa akun tertaut cascade dilewati diam-diam.
//
// Sengaja TANPA transaksi gabungan: kalau cascade gagal setelah status
// member tersimpan, status member tidak di-rollback — error tetap
// dikembalikan supaya kelihatan.
func (s *LinkageService) UpdateMemberStatus(ctx context.Context, memberID uuid.UUID, status string) (*memberModel.MemberModel, error) {
	if !memberModel.ValidMemberStatus(status) {
		return nil, ErrInvalidStatus
	}
	db := s.DB.WithContext(ctx)

	var member memberModel.MemberModel
	if err := db.Where("member_id = ?", memberID).First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if err := db.Model(&member).Update("member_status", status).Error; err != nil {
		return nil, err
	}
	member.MemberStatus = status

	userStatus := userModel.UserStatusActive
	if status == memberModel.MemberStatusInactive || status == memberModel.MemberStatusDeleted {
		userStatus = userModel.UserStatusInactive
	}
	if err := s.cascadeToLinkedUser(db, memberID, userStatus); err != nil {
		return &member, fmt.Errorf("status member tersimpan, cascade ke user gagal: %w", err)
	}

	return &member, nil
}

// DeleteMember: soft delete — sama dengan update status ke deleted,
// record tetap di tabel.
func (s *LinkageService) DeleteMember(ctx context.Context, memberID uuid.UUID) (*memberModel.MemberModel, error) {
	return s.UpdateMemberStatus(ctx, memberID, memberModel.MemberStatusDeleted)
}

// UpdateUserStatus menyimpan status user role member lalu cascade balik ke
// member: inactive → member inactive; active → member balik active HANYA
// kalau statusnya sekarang inactive. Member deleted tidak pernah
// dihidupkan lagi lewat jalur ini.
func (s *LinkageService) UpdateUserStatus(ctx context.Context, userID uuid.UUID, status string) (*userModel.UserModel, error) {
	if status != userModel.UserStatusActive && status != userModel.UserStatusInactive {
		return nil, ErrInvalidStatus
	}
	db := s.DB.WithContext(ctx)

	var user userModel.UserModel
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := db.Model(&user).Update("user_status", status).Error; err != nil {
		return nil, err
	}
	user.UserStatus = status

	if !user.IsMemberRole() || user.UserMemberID == nil {
		return &user, nil
	}

	var q *gorm.DB
	if status == userModel.UserStatusInactive {
		q = db.Model(&memberModel.MemberModel{}).
			Where("member_id = ?", *user.UserMemberID).
			Update("member_status", memberModel.MemberStatusInactive)
	} else {
		q = db.Model(&memberModel.MemberModel{}).
			Where("member_id = ? AND member_status = ?", *user.UserMemberID, memberModel.MemberStatusInactive).
			Update("member_status", memberModel.MemberStatusActive)
	}
	if q.Error != nil {
		return &user, fmt.Errorf("status user tersimpan, cascade ke member gagal: %w", q.Error)
	}

	return &user, nil
}

// DeleteUser: soft delete akun. Semua role → inactive; khusus role member
// member tertautnya ikut DELETED (lebih kuat dari cascade status biasa —
// hapus itu terminal dua arah).
func (s *LinkageService) DeleteUser(ctx context.Context, userID uuid.UUID) (*userModel.UserModel, error) {
	db := s.DB.WithContext(ctx)

	var user userModel.UserModel
	if err := db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := db.Model(&user).Update("user_status", userModel.UserStatusInactive).Error; err != nil {
		return nil, err
	}
	user.UserStatus = userModel.UserStatusInactive

	if user.IsMemberRole() && user.UserMemberID != nil {
		if err := db.Model(&memberModel.MemberModel{}).
			Where("member_id = ?", *user.UserMemberID).
			Update("member_status", memberModel.MemberStatusDeleted).Error; err != nil {
			return &user, fmt.Errorf("user dinonaktifkan, cascade delete member gagal: %w", err)
		}
	}

	return &user, nil
}

// cascadeToLinkedUser memaksa status akun tertaut (kalau ada).
func (s *LinkageService) cascadeToLinkedUser(db *gorm.DB, memberID uuid.UUID, status string) error {
	return db.Model(&userModel.UserModel{}).
		Where("user_member_id = ? AND user_role = ?", memberID, constants.RoleMember).
		Update("user_status", status).Error
}
