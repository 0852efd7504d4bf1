package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/portfolio-backend/internal/domain"
	"github.com/spec-kit/portfolio-backend/internal/events"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	nextID int
	users  map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	user.ID = fmt.Sprintf("user-%d", r.nextID)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	matches := r.filter(func(u *domain.User) bool { return strings.EqualFold(u.Username, username) })
	if len(matches) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &matches[0], nil
}

func (r *fakeUserRepo) ListCreatedAfter(_ context.Context, after time.Time) ([]domain.User, error) {
	return r.filter(func(u *domain.User) bool { return u.CreatedAt.After(after) }), nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	return r.filter(func(*domain.User) bool { return true }), nil
}

func (r *fakeUserRepo) ListByRole(_ context.Context, role domain.Role) ([]domain.User, error) {
	return r.filter(func(u *domain.User) bool { return u.Role == role }), nil
}

func (r *fakeUserRepo) backdate(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].CreatedAt = at
}

func (r *fakeUserRepo) filter(keep func(*domain.User) bool) []domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, user := range r.users {
		if keep(user) {
			out = append(out, *user)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeProjectRepo struct {
	mu       sync.Mutex
	nextID   int
	projects map[string]*domain.Project
	skills   *fakeSkillRepo
}

func newFakeProjectRepo(skills *fakeSkillRepo) *fakeProjectRepo {
	return &fakeProjectRepo{projects: make(map[string]*domain.Project), skills: skills}
}

func (r *fakeProjectRepo) Create(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	project.ID = fmt.Sprintf("project-%d", r.nextID)
	project.CreatedAt = time.Now()
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) Update(_ context.Context, project *domain.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[project.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *project
	r.projects[project.ID] = &copied
	return nil
}

func (r *fakeProjectRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.projects[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.projects, id)
	return nil
}

func (r *fakeProjectRepo) GetByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	project, ok := r.projects[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *project
	return &copied, nil
}

func (r *fakeProjectRepo) List(_ context.Context) ([]domain.Project, error) {
	return r.filter(func(*domain.Project) bool { return true }), nil
}

func (r *fakeProjectRepo) ListByStatus(_ context.Context, status string) ([]domain.Project, error) {
	return r.filter(func(p *domain.Project) bool { return strings.EqualFold(p.Status, status) }), nil
}

func (r *fakeProjectRepo) SearchByTitle(_ context.Context, term string) ([]domain.Project, error) {
	term = strings.ToLower(strings.TrimSpace(term))
	return r.filter(func(p *domain.Project) bool { return strings.Contains(strings.ToLower(p.Title), term) }), nil
}

func (r *fakeProjectRepo) ListBySkillName(ctx context.Context, skillName string) ([]domain.Project, error) {
	skill, err := r.skills.GetByName(ctx, skillName)
	if err != nil {
		return nil, nil
	}
	return r.filter(func(p *domain.Project) bool {
		for _, id := range p.SkillIDs {
			if id == skill.ID {
				return true
			}
		}
		return false
	}), nil
}

func (r *fakeProjectRepo) ListCreatedAfter(_ context.Context, after time.Time) ([]domain.Project, error) {
	return r.filter(func(p *domain.Project) bool { return p.CreatedAt.After(after) }), nil
}

// backdate rewrites a stored creation time.
func (r *fakeProjectRepo) backdate(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[id].CreatedAt = at
}

func (r *fakeProjectRepo) filter(keep func(*domain.Project) bool) []domain.Project {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Project
	for _, project := range r.projects {
		if keep(project) {
			out = append(out, *project)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeSkillRepo struct {
	mu       sync.Mutex
	nextID   int
	skills   map[string]*domain.Skill
	projects *fakeProjectRepo
}

func newFakeSkillRepo() *fakeSkillRepo {
	return &fakeSkillRepo{skills: make(map[string]*domain.Skill)}
}

func (r *fakeSkillRepo) Create(_ context.Context, skill *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	skill.ID = fmt.Sprintf("skill-%d", r.nextID)
	skill.CreatedAt = time.Now()
	copied := *skill
	r.skills[skill.ID] = &copied
	return nil
}

func (r *fakeSkillRepo) Update(_ context.Context, skill *domain.Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.skills[skill.ID]; !ok {
		return pgx.ErrNoRows
	}
	copied := *skill
	r.skills[skill.ID] = &copied
	return nil
}

func (r *fakeSkillRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.skills[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.skills, id)
	return nil
}

func (r *fakeSkillRepo) GetByID(_ context.Context, id string) (*domain.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	skill, ok := r.skills[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *skill
	return &copied, nil
}

func (r *fakeSkillRepo) GetByName(_ context.Context, name string) (*domain.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, skill := range r.skills {
		if strings.EqualFold(skill.Name, name) {
			copied := *skill
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeSkillRepo) List(_ context.Context) ([]domain.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Skill
	for _, skill := range r.skills {
		out = append(out, *skill)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSkillRepo) ListByProject(ctx context.Context, projectID string) ([]domain.Skill, error) {
	project, err := r.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, nil
	}
	var out []domain.Skill
	for _, id := range project.SkillIDs {
		if skill, err := r.GetByID(ctx, id); err == nil {
			out = append(out, *skill)
		}
	}
	return out, nil
}

func (r *fakeSkillRepo) ListCreatedAfter(_ context.Context, after time.Time) ([]domain.Skill, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Skill
	for _, skill := range r.skills {
		if skill.CreatedAt.After(after) {
			out = append(out, *skill)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeSkillRepo) backdate(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.skills[id].CreatedAt = at
}

// newFakeCatalog links the project and skill fakes the way the join table does.
func newFakeCatalog() (*fakeProjectRepo, *fakeSkillRepo) {
	skills := newFakeSkillRepo()
	projects := newFakeProjectRepo(skills)
	skills.projects = projects
	return projects, skills
}

type fakeMessageRepo struct {
	mu       sync.Mutex
	nextID   int
	messages map[string]*domain.ContactMessage
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: make(map[string]*domain.ContactMessage)}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	message.ID = fmt.Sprintf("msg-%d", r.nextID)
	message.CreatedAt = time.Now()
	copied := *message
	r.messages[message.ID] = &copied
	return nil
}

func (r *fakeMessageRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.messages, id)
	return nil
}

func (r *fakeMessageRepo) GetByID(_ context.Context, id string) (*domain.ContactMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, ok := r.messages[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *message
	return &copied, nil
}

func (r *fakeMessageRepo) MarkRead(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	message, ok := r.messages[id]
	if !ok {
		return pgx.ErrNoRows
	}
	message.Read = true
	return nil
}

func (r *fakeMessageRepo) List(_ context.Context) ([]domain.ContactMessage, error) {
	return r.filter(func(*domain.ContactMessage) bool { return true }), nil
}

func (r *fakeMessageRepo) ListUnread(_ context.Context) ([]domain.ContactMessage, error) {
	return r.filter(func(m *domain.ContactMessage) bool { return !m.Read }), nil
}

func (r *fakeMessageRepo) ListByEmail(_ context.Context, email string) ([]domain.ContactMessage, error) {
	return r.filter(func(m *domain.ContactMessage) bool { return strings.EqualFold(m.Email, email) }), nil
}

func (r *fakeMessageRepo) Search(_ context.Context, keyword string) ([]domain.ContactMessage, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	return r.filter(func(m *domain.ContactMessage) bool {
		haystack := strings.ToLower(m.Name + " " + m.Email + " " + m.Subject + " " + m.Message)
		return strings.Contains(haystack, keyword)
	}), nil
}

func (r *fakeMessageRepo) ListCreatedAfter(_ context.Context, after time.Time) ([]domain.ContactMessage, error) {
	return r.filter(func(m *domain.ContactMessage) bool { return m.CreatedAt.After(after) }), nil
}

func (r *fakeMessageRepo) backdate(id string, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages[id].CreatedAt = at
}

func (r *fakeMessageRepo) filter(keep func(*domain.ContactMessage) bool) []domain.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ContactMessage
	for _, message := range r.messages {
		if keep(message) {
			out = append(out, *message)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}
