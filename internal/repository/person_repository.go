package repository

import (
	"github.com/AranyaAryaman/noJIRA/internal/models"
	"gorm.io/gorm"
)

// GormPersonRepository is a GORM implementation of PersonRepository
type GormPersonRepository struct {
	db *gorm.DB
}

// NewPersonRepository creates a new PersonRepository
func NewPersonRepository(db *gorm.DB) PersonRepository {
	return &GormPersonRepository{db: db}
}

// Create creates a new person
func (r *GormPersonRepository) Create(person *models.Person) error {
	return r.db.Create(person).Error
}

// FindByID finds a person by ID
func (r *GormPersonRepository) FindByID(id uint64) (*models.Person, error) {
	var person models.Person
	if err := r.db.First(&person, id).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// FindByEmail finds a person by email
func (r *GormPersonRepository) FindByEmail(email string) (*models.Person, error) {
	var person models.Person
	if err := r.db.Where("email = ?", email).First(&person).Error; err != nil {
		return nil, err
	}
	return &person, nil
}

// Search lists people whose name or email contains the query
func (r *GormPersonRepository) Search(query string, limit int) ([]models.Person, error) {
	var people []models.Person
	q := r.db.Model(&models.Person{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("email LIKE ? OR name LIKE ?", pattern, pattern)
	}
	if err := q.Limit(limit).Find(&people).Error; err != nil {
		return nil, err
	}
	return people, nil
}
