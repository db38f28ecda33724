package backend

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// AddUser creates an account directly, bypassing the registration
// endpoint. Used to bootstrap admin accounts for the demo and for tests.
func (s *Server) AddUser(email, password, nickname, role string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	email = strings.ToLower(email)
	if _, exists := s.emailIndex[email]; exists {
		return 0, fmt.Errorf("email %s already registered", email)
	}

	s.nextUserID++
	user := &userRecord{
		ID:           s.nextUserID,
		Email:        email,
		Nickname:     nickname,
		Role:         role,
		PasswordHash: hash,
	}
	s.users[user.ID] = user
	s.emailIndex[email] = user.ID
	s.nickIndex[nickname] = user.ID
	return user.ID, nil
}

// SeedCatalog loads a small sample catalog so the demo has something to
// browse.
func (s *Server) SeedCatalog() {
	samples := []Content{
		{Type: "MOVIE", Title: "Parasite", Overview: "A poor family schemes its way into a wealthy household.", Genres: "thriller,drama", ReleaseDate: "2019-05-30", Rating: 8.5, ViewCount: 3200},
		{Type: "MOVIE", Title: "Oldboy", Overview: "A man imprisoned for fifteen years seeks his captor.", Genres: "thriller,action", ReleaseDate: "2003-11-21", Rating: 8.3, ViewCount: 2100},
		{Type: "TV", Title: "Squid Game", Overview: "Debtors compete in deadly children's games.", Genres: "thriller,drama", ReleaseDate: "2021-09-17", Rating: 8.0, ViewCount: 5400},
		{Type: "TV", Title: "Kingdom", Overview: "A crown prince investigates a plague that raises the dead.", Genres: "horror,drama", ReleaseDate: "2019-01-25", Rating: 8.3, ViewCount: 1800},
		{Type: "MOVIE", Title: "The Handmaiden", Overview: "A con man hires a pickpocket as a handmaiden to an heiress.", Genres: "drama,romance", ReleaseDate: "2016-06-01", Rating: 8.1, ViewCount: 1500},
		{Type: "MOVIE", Title: "Train to Busan", Overview: "Passengers fight to survive a zombie outbreak on a train.", Genres: "horror,action", ReleaseDate: "2016-07-20", Rating: 7.6, ViewCount: 2900},
		{Type: "TV", Title: "Crash Landing on You", Overview: "A paragliding mishap lands an heiress across the border.", Genres: "romance,drama", ReleaseDate: "2019-12-14", Rating: 8.7, ViewCount: 2600},
		{Type: "MOVIE", Title: "Burning", Overview: "A deliveryman becomes entangled with an enigmatic rival.", Genres: "drama,mystery", ReleaseDate: "2018-05-17", Rating: 7.5, ViewCount: 900},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range samples {
		s.nextContentID++
		c.ID = s.nextContentID
		content := c
		s.contents[content.ID] = &content
	}
}
