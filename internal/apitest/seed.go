package apitest

import (
	"context"

	"github.com/google/uuid"

	"flicksy/pkg/models"
)

var (
	FightClub = models.MediaKey{TMDBID: 550, MediaType: models.MediaMovie}
	Heat      = models.MediaKey{TMDBID: 949, MediaType: models.MediaMovie}
	Severance = models.MediaKey{TMDBID: 95396, MediaType: models.MediaTV}
	// NoPoster has no poster, vote or date.
	NoPoster = models.MediaKey{TMDBID: 1234, MediaType: models.MediaMovie}
)

func vote(v float64) *float64 { return &v }

// Seed loads the demo user and a small catalog.
func Seed(ctx context.Context, st *Store) error {
	err := st.AddUser(ctx, User{
		ID:           uuid.NewString(),
		Name:         DemoName,
		Email:        DemoEmail,
		PasswordHash: HashPassword(DemoPassword),
	})
	if err != nil {
		return err
	}

	st.AddTitle(Title{Key: FightClub, Title: "Fight Club", PosterPath: "/fc.jpg", VoteAverage: vote(8.433), Date: "1999-10-15",
		Overview: "A ticking-time-bomb insomniac and a slippery soap salesman channel primal male aggression into a shocking new form of therapy."})
	st.AddTitle(Title{Key: Heat, Title: "Heat", PosterPath: "/heat.jpg", VoteAverage: vote(7.9), Date: "1995-12-15",
		Overview: "Obsessive master thief Neil McCauley leads a top-notch crew on various daring heists throughout Los Angeles."})
	st.AddTitle(Title{Key: Severance, Title: "Severance", PosterPath: "/sev.jpg", VoteAverage: vote(8.4), Date: "2022-02-17",
		Overview: "Mark leads a team of office workers whose memories have been surgically divided between their work and personal lives."})
	st.AddTitle(Title{Key: NoPoster, Title: "Lost Reel"})

	st.AddPerson(Person{ID: 287, Name: "Brad Pitt", ProfilePath: "/brad.jpg"})
	st.AddPerson(Person{ID: 1158, Name: "Al Pacino"})

	st.SetCast(FightClub, []models.CastMember{
		{ID: 819, Name: "Edward Norton", Character: "The Narrator", ProfilePath: "/norton.jpg"},
		{ID: 287, Name: "Brad Pitt", Character: "Tyler Durden", ProfilePath: "/brad.jpg"},
		{ID: 1283, Name: "Helena Bonham Carter", Character: "Marla Singer"},
	})
	st.SetCast(Severance, []models.CastMember{
		{ID: 1, Name: "Adam Scott", Character: "Mark Scout"},
	})

	st.SetOffers(FightClub, models.ProviderOffers{
		Flatrate: []models.Provider{{ProviderID: 8, ProviderName: "Netflix", LogoPath: "/netflix.png"}},
		Rent: []models.Provider{
			{ProviderID: 2, ProviderName: "Apple TV", LogoPath: "/apple.png"},
			{ProviderID: 8, ProviderName: "Netflix (rent)", LogoPath: "/other.png"},
		},
		Buy: []models.Provider{
			{ProviderID: 2, ProviderName: "Apple TV", LogoPath: "/apple.png"},
			{ProviderID: 3, ProviderName: "Google Play", LogoPath: "/play.png"},
		},
	})
	st.SetOffers(Severance, models.ProviderOffers{})
	return nil
}
