package classify

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/volunteer-connect-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func project(creator string, status models.Status, age time.Duration, skills ...string) models.Project {
	p := models.Project{
		ID:        uuid.New(),
		Title:     "project by " + creator,
		CreatorID: creator,
		Status:    status,
		CreatedAt: base.Add(-age),
	}
	for i, s := range skills {
		p.Skills = append(p.Skills, models.ProjectSkill{Value: s, Position: i})
	}
	return p
}

func application(p models.Project, volunteer string) models.Application {
	return models.Application{ID: uuid.New(), ProjectID: p.ID, VolunteerID: volunteer, Status: models.ApplicationApplied}
}

func ids(projects []models.Project) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(projects))
	for _, p := range projects {
		out = append(out, p.ID)
	}
	return out
}

// fixture: u1 created p1 and p2, u2 created p3, u3 created p4; u1 applied to p3.
func fixture() ([]models.Project, []models.Application) {
	p1 := project("u1", models.StatusOpen, 4*time.Hour, "React")
	p2 := project("u1", models.StatusInProgress, 3*time.Hour, "Backend")
	p3 := project("u2", models.StatusInProgress, 2*time.Hour, "DevOps", "Databases")
	p4 := project("u3", models.StatusOpen, 1*time.Hour, "react")
	projects := []models.Project{p1, p2, p3, p4}
	applications := []models.Application{
		application(p3, "u1"),
		application(p2, "u2"),
	}
	return projects, applications
}

func TestCreatedByUser(t *testing.T) {
	projects, _ := fixture()

	got := CreatedByUser(projects, "u1")
	assert.Equal(t, []uuid.UUID{projects[0].ID, projects[1].ID}, ids(got))
	for _, p := range got {
		assert.Equal(t, "u1", p.CreatorID)
	}

	assert.Empty(t, CreatedByUser(projects, "nobody"))
	assert.NotNil(t, CreatedByUser(projects, ""))
	assert.Empty(t, CreatedByUser(projects, ""))
}

func TestVolunteeredByUser(t *testing.T) {
	projects, applications := fixture()

	got := VolunteeredByUser(projects, applications, "u1")
	assert.Equal(t, []uuid.UUID{projects[2].ID}, ids(got))

	got = VolunteeredByUser(projects, applications, "u2")
	assert.Equal(t, []uuid.UUID{projects[1].ID}, ids(got))
}

func TestVolunteeredByUserDropsDanglingApplications(t *testing.T) {
	projects, applications := fixture()
	deleted := project("u9", models.StatusOpen, 0)
	applications = append(applications, application(deleted, "u1"))

	got := VolunteeredByUser(projects, applications, "u1")
	assert.Equal(t, []uuid.UUID{projects[2].ID}, ids(got))
}

func TestVolunteeredByUserIgnoresDuplicateApplications(t *testing.T) {
	projects, applications := fixture()
	applications = append(applications, application(projects[2], "u1"))

	got := VolunteeredByUser(projects, applications, "u1")
	assert.Len(t, got, 1)
}

func TestDiscoverableByUser(t *testing.T) {
	projects, applications := fixture()

	got := DiscoverableByUser(projects, applications, "u1")
	assert.Equal(t, []uuid.UUID{projects[3].ID}, ids(got))

	got = DiscoverableByUser(projects, applications, "u2")
	assert.Equal(t, []uuid.UUID{projects[0].ID, projects[3].ID}, ids(got))
}

func TestDiscoverableByAnonymousUserIsEverything(t *testing.T) {
	projects, applications := fixture()
	got := DiscoverableByUser(projects, applications, "")
	assert.Equal(t, ids(projects), ids(got))
}

func TestPartitionsAreDisjoint(t *testing.T) {
	projects, applications := fixture()
	for _, user := range []string{"u1", "u2", "u3", "u4"} {
		t.Run(user, func(t *testing.T) {
			discoverable := map[uuid.UUID]bool{}
			for _, p := range DiscoverableByUser(projects, applications, user) {
				discoverable[p.ID] = true
			}
			for _, p := range CreatedByUser(projects, user) {
				assert.False(t, discoverable[p.ID], "created project %s is discoverable", p.ID)
			}
			for _, p := range VolunteeredByUser(projects, applications, user) {
				assert.False(t, discoverable[p.ID], "volunteered project %s is discoverable", p.ID)
			}
		})
	}
}

func TestFilterByStatus(t *testing.T) {
	projects, _ := fixture()

	open := FilterByStatus(projects, models.StatusOpen)
	assert.Equal(t, []uuid.UUID{projects[0].ID, projects[3].ID}, ids(open))

	assert.Empty(t, FilterByStatus(projects, models.StatusCompleted))
	assert.ElementsMatch(t, ids(projects), ids(FilterByStatus(projects, models.StatusAll)))
	assert.ElementsMatch(t, ids(projects), ids(FilterByStatus(projects, "")))
}

func TestFilterBySkills(t *testing.T) {
	projects, _ := fixture()

	got := FilterBySkills(projects, []string{"REACT"})
	assert.Equal(t, []uuid.UUID{projects[0].ID, projects[3].ID}, ids(got))

	got = FilterBySkills(projects, []string{"databases", "backend"})
	assert.Equal(t, []uuid.UUID{projects[1].ID, projects[2].ID}, ids(got))

	assert.Len(t, FilterBySkills(projects, nil), len(projects))
	assert.Len(t, FilterBySkills(projects, []string{" "}), len(projects))
}

func TestLatest(t *testing.T) {
	var projects []models.Project
	for i := 0; i < 5; i++ {
		projects = append(projects, project("u1", models.StatusOpen, time.Duration(5-i)*time.Minute))
	}

	got := Latest(projects, 2)
	require.Len(t, got, 2)
	assert.Equal(t, projects[4].ID, got[0].ID)
	assert.Equal(t, projects[3].ID, got[1].ID)

	assert.Len(t, Latest(projects, 10), 5)
	assert.Empty(t, Latest(projects, 0))
	assert.Empty(t, Latest(projects, -1))
}

func TestLatestKeepsInputOrderForTies(t *testing.T) {
	a := project("u1", models.StatusOpen, 0)
	b := project("u2", models.StatusOpen, 0)
	c := project("u3", models.StatusOpen, time.Hour)

	got := Latest([]models.Project{c, a, b}, 3)
	assert.Equal(t, []uuid.UUID{a.ID, b.ID, c.ID}, ids(got))
}

func TestLatestDoesNotMutateInput(t *testing.T) {
	old := project("u1", models.StatusOpen, time.Hour)
	recent := project("u1", models.StatusOpen, 0)
	input := []models.Project{old, recent}

	Latest(input, 2)
	assert.Equal(t, old.ID, input[0].ID)
}

func TestResultsNeverRepeatIDs(t *testing.T) {
	projects, applications := fixture()
	doubled := append(append([]models.Project{}, projects...), projects...)

	assert.Len(t, CreatedByUser(doubled, "u1"), 2)
	assert.Len(t, DiscoverableByUser(doubled, applications, ""), 4)
	assert.Len(t, FilterByStatus(doubled, models.StatusAll), 4)
	assert.Len(t, Latest(doubled, 10), 4)
}

func TestEmptyInputs(t *testing.T) {
	assert.Empty(t, CreatedByUser(nil, "u1"))
	assert.Empty(t, VolunteeredByUser(nil, nil, "u1"))
	assert.Empty(t, DiscoverableByUser(nil, nil, "u1"))
	assert.Empty(t, DiscoverableByUser(nil, nil, ""))
	assert.Empty(t, FilterByStatus(nil, models.StatusOpen))
	assert.Empty(t, Latest(nil, 3))
	assert.NotNil(t, Latest(nil, 3))
}

func TestBuildBoard(t *testing.T) {
	projects, applications := fixture()

	board := BuildBoard(projects, applications, "u1", models.StatusAll)
	assert.Equal(t, []uuid.UUID{projects[0].ID, projects[1].ID}, ids(board.Created))
	assert.Equal(t, []uuid.UUID{projects[2].ID}, ids(board.Volunteered))
	assert.Equal(t, []uuid.UUID{projects[3].ID}, ids(board.Discoverable))

	board = BuildBoard(projects, applications, "u1", models.StatusInProgress)
	assert.Equal(t, []uuid.UUID{projects[1].ID}, ids(board.Created))
	assert.Equal(t, []uuid.UUID{projects[2].ID}, ids(board.Volunteered))
	assert.Empty(t, board.Discoverable)
}
