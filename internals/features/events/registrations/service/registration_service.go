package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"time"

	"vagsociety_backend/internals/features/events/registrations/dto"
	"vagsociety_backend/internals/features/events/registrations/model"
	"vagsociety_backend/internals/helpers/storage"
	"vagsociety_backend/internals/mailer"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrNotFound        = errors.New("registrasi tidak ditemukan")
	ErrAlreadyDecided  = errors.New("registrasi sudah diputuskan dengan status lain")
	ErrInvalidDecision = errors.New("target status harus APPROVED atau DECLINED")
	ErrStorage         = errors.New("penyimpanan foto gagal")
)

type Options struct {
	Folder     string // prefix folder storage, mis. vagsocietyserbia/events
	AdminEmail string
	Compress   bool
}

type Service struct {
	DB   *gorm.DB
	Blob storage.BlobService
	Mail mailer.Sender
	Opt  Options
	now  func() time.Time
}

func New(db *gorm.DB, blob storage.BlobService, mail mailer.Sender, opt Options) *Service {
	return &Service{DB: db, Blob: blob, Mail: mail, Opt: opt, now: time.Now}
}

type SubmitResult struct {
	Registration  model.RegistrationModel `json:"registration"`
	Notifications mailer.Outcome          `json:"notifications"`
}

// Submit = Commit lalu NotifySubmitted. Error hanya dari fase commit.
func (s *Service) Submit(ctx context.Context, req dto.CreateRegistrationRequest, photos []Photo) (*SubmitResult, error) {
	reg, err := s.Commit(ctx, req, photos)
	if err != nil {
		return nil, err
	}
	return &SubmitResult{Registration: *reg, Notifications: s.NotifySubmitted(ctx, reg)}, nil
}

// Commit upload semua foto berurutan ke <folder>/<id>, lalu satu transaksi
// menyimpan registrasi + baris foto. Gagal di tengah → tidak ada baris tersimpan,
// object yang sudah ter-upload dihapus best-effort.
func (s *Service) Commit(ctx context.Context, req dto.CreateRegistrationRequest, photos []Photo) (*model.RegistrationModel, error) {
	id := uuid.New()
	reg := req.ToModel(id)
	folder := path.Join(s.Opt.Folder, id.String())

	uploaded := make([]*storage.Object, 0, len(photos))
	for i, p := range photos {
		data, ct := p.Data, p.ContentType
		meta := map[string]any{"original_name": p.Filename, "original_size": len(p.Data)}
		if s.Opt.Compress {
			if out, changed := storage.CompressPhoto(data, ct, storage.CompressOptions{}); changed {
				meta["compressed"] = true
				data = out
			}
		}

		obj, err := s.Blob.Upload(ctx, folder, p.Filename, ct, data)
		if err != nil {
			log.Printf("[ERROR] upload foto %d/%d registrasi %s gagal: %v", i+1, len(photos), id, err)
			s.cleanup(uploaded)
			return nil, fmt.Errorf("%w: %v", ErrStorage, err)
		}
		for k, v := range obj.Meta {
			meta[k] = v
		}
		obj.Meta = meta
		uploaded = append(uploaded, obj)
	}

	images := make([]model.RegistrationImageModel, 0, len(uploaded))
	for _, obj := range uploaded {
		images = append(images, model.RegistrationImageModel{
			RegistrationImageRegistrationID: id,
			RegistrationImageURL:            obj.URL,
			RegistrationImageObjectKey:      obj.Key,
			RegistrationImageContentType:    obj.ContentType,
			RegistrationImageSizeBytes:      obj.Size,
			RegistrationImageMeta:           datatypes.JSONMap(obj.Meta),
		})
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Images").Create(&reg).Error; err != nil {
			return err
		}
		if len(images) > 0 {
			if err := tx.Create(&images).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] simpan registrasi %s gagal: %v", id, err)
		s.cleanup(uploaded)
		return nil, fmt.Errorf("simpan registrasi: %w", err)
	}

	reg.Images = images
	log.Printf("[INFO] registrasi %s tersimpan (%d foto, driver=%s)", id, len(images), s.Blob.Driver())
	return &reg, nil
}

// cleanup memakai context baru; request bisa saja sudah dibatalkan.
func (s *Service) cleanup(objs []*storage.Object) {
	if len(objs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, o := range objs {
		if err := s.Blob.Delete(ctx, o.Key); err != nil {
			log.Printf("[WARN] hapus object %s gagal: %v", o.Key, err)
		}
	}
}

func toMail(reg *model.RegistrationModel) mailer.RegistrationMail {
	urls := make([]string, 0, len(reg.Images))
	for _, img := range reg.Images {
		urls = append(urls, img.RegistrationImageURL)
	}
	return mailer.RegistrationMail{
		ID:             reg.RegistrationID.String(),
		FullName:       reg.RegistrationFullName,
		Email:          reg.RegistrationEmail,
		Phone:          reg.RegistrationPhone,
		CarModel:       reg.RegistrationCarModel,
		Country:        reg.RegistrationCountry,
		City:           reg.RegistrationCity,
		Trailer:        reg.RegistrationArrivingWithTrailer,
		AdditionalInfo: reg.RegistrationAdditionalInfo,
		ImageURLs:      urls,
	}
}

// NotifySubmitted: email "pending" ke pendaftar + notifikasi admin.
func (s *Service) NotifySubmitted(ctx context.Context, reg *model.RegistrationModel) mailer.Outcome {
	data := toMail(reg)
	renders := []func() (mailer.Message, error){
		mailer.RenderFunc(mailer.RegistrationPending, string(reg.RegistrationLanguage), reg.RegistrationEmail, data),
	}
	if s.Opt.AdminEmail != "" {
		renders = append(renders, mailer.RenderFunc(mailer.RegistrationAdmin, "sr", s.Opt.AdminEmail, data))
	}
	return mailer.NotifyRendered(ctx, s.Mail, renders...)
}

/* =========================================================
   MODERASI
========================================================= */

type DecisionResult struct {
	Registration  model.RegistrationModel `json:"registration"`
	Changed       bool                    `json:"changed"`
	Notifications mailer.Outcome          `json:"notifications"`
}

func (s *Service) Approve(ctx context.Context, id uuid.UUID) (*DecisionResult, error) {
	return s.Decide(ctx, id, model.RegistrationApproved)
}

func (s *Service) Decline(ctx context.Context, id uuid.UUID) (*DecisionResult, error) {
	return s.Decide(ctx, id, model.RegistrationDeclined)
}

// Decide membalik PENDING → target (dicek via CanTransitionTo, lalu UPDATE bersyarat).
// Sudah di target → idempotent tanpa email. Sudah diputuskan lain → ErrAlreadyDecided.
func (s *Service) Decide(ctx context.Context, id uuid.UUID, target model.RegistrationStatus) (*DecisionResult, error) {
	if !target.IsDecision() {
		return nil, ErrInvalidDecision
	}

	var (
		reg     model.RegistrationModel
		changed bool
	)
	withImages := func(db *gorm.DB) *gorm.DB {
		return db.Order("registration_image_created_at ASC")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Images", withImages).First(&reg, "registration_id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if reg.RegistrationStatus == target {
			return nil
		}
		if !reg.RegistrationStatus.CanTransitionTo(target) {
			return ErrAlreadyDecided
		}

		now := s.now().UTC()
		res := tx.Model(&model.RegistrationModel{}).
			Where("registration_id = ? AND registration_status = ?", id, model.RegistrationPending).
			Updates(map[string]any{
				"registration_status":      target,
				"registration_reviewed_at": now,
				"registration_updated_at":  now,
			})
		if res.Error != nil {
			return res.Error
		}
		// request lain menang duluan di antara SELECT dan UPDATE
		if res.RowsAffected != 1 {
			return ErrAlreadyDecided
		}
		changed = true

		reg = model.RegistrationModel{}
		return tx.Preload("Images", withImages).First(&reg, "registration_id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}

	out := &DecisionResult{Registration: reg, Changed: changed}
	if !changed {
		log.Printf("[INFO] registrasi %s sudah %s, tidak ada perubahan", id, target)
		return out, nil
	}

	kind := mailer.RegistrationApproved
	if target == model.RegistrationDeclined {
		kind = mailer.RegistrationDeclined
	}
	out.Notifications = mailer.NotifyRendered(ctx, s.Mail,
		mailer.RenderFunc(kind, string(reg.RegistrationLanguage), reg.RegistrationEmail, toMail(&reg)),
	)
	log.Printf("[INFO] registrasi %s → %s", id, target)
	return out, nil
}

/* =========================================================
   QUERY (admin)
========================================================= */

type ListFilter struct {
	Status *model.RegistrationStatus
	Offset int
	Limit  int
}

type ListResult struct {
	Rows   []model.RegistrationModel
	Total  int64
	Counts map[model.RegistrationStatus]int64
}

// List terbaru dulu, plus jumlah per status untuk tab admin.
func (s *Service) List(ctx context.Context, f ListFilter) (*ListResult, error) {
	db := s.DB.WithContext(ctx)

	q := db.Model(&model.RegistrationModel{})
	if f.Status != nil {
		q = q.Where("registration_status = ?", *f.Status)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []model.RegistrationModel
	if err := q.Preload("Images", func(db *gorm.DB) *gorm.DB {
		return db.Order("registration_image_created_at ASC")
	}).
		Order("registration_created_at DESC").
		Offset(f.Offset).Limit(f.Limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	type countRow struct {
		Status model.RegistrationStatus `gorm:"column:registration_status"`
		Total  int64                    `gorm:"column:total"`
	}
	var cr []countRow
	if err := db.Model(&model.RegistrationModel{}).
		Select("registration_status, COUNT(*) AS total").
		Group("registration_status").
		Scan(&cr).Error; err != nil {
		return nil, err
	}
	counts := map[model.RegistrationStatus]int64{
		model.RegistrationPending:  0,
		model.RegistrationApproved: 0,
		model.RegistrationDeclined: 0,
	}
	for _, r := range cr {
		counts[r.Status] = r.Total
	}

	return &ListResult{Rows: rows, Total: total, Counts: counts}, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.RegistrationModel, error) {
	var reg model.RegistrationModel
	err := s.DB.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("registration_image_created_at ASC")
		}).
		First(&reg, "registration_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
