package repository

import (
	"strings"

	"golang.org/x/crypto/bcrypt"

	"campus/models"
)

type account struct {
	models.User
	Username   string
	Hash       []byte
	Department string
}

// CreateUser hashes the password and stores a new account. Usernames are
// unique, case-insensitively.
func (s *Store) CreateUser(req models.RegisterRequest, department string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}
	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts.rows {
		if strings.EqualFold(a.Username, req.Username) {
			return models.User{}, ErrConflict
		}
	}
	a := s.accounts.insert(func(id int) account {
		return account{
			User:       models.User{ID: id, FullName: req.FullName, Email: req.Email, Role: role},
			Username:   req.Username,
			Hash:       hash,
			Department: department,
		}
	})
	return a.User, nil
}

// Authenticate checks a username and password pair.
func (s *Store) Authenticate(username, password string) (models.User, error) {
	s.mu.RLock()
	var found *account
	for _, a := range s.accounts.rows {
		if strings.EqualFold(a.Username, username) {
			a := a
			found = &a
			break
		}
	}
	s.mu.RUnlock()

	if found == nil {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(found.Hash, []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return found.User, nil
}

func (s *Store) User(id int) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, err := s.accounts.get(id)
	return a.User, err
}

// Teachers lists faculty accounts, optionally for one department.
func (s *Store) Teachers(department string) []models.Teacher {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Teacher
	for _, a := range s.accounts.list(nil) {
		if a.Role != models.RoleFaculty {
			continue
		}
		if department != "" && !strings.EqualFold(a.Department, department) {
			continue
		}
		out = append(out, models.Teacher{ID: a.ID, FullName: a.FullName, Email: a.Email, Department: a.Department})
	}
	return out
}
