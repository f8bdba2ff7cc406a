package http

import (
	"time"

	"github.com/techfolio/backend/internal/domain/portfolio"
	"github.com/techfolio/backend/internal/domain/wizard"
)

// Portfolio DTOs

type ProjectDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image,omitempty"`
}

type SocialsDTO struct {
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
}

type PortfolioDTO struct {
	OwnerID        string       `json:"owner_id"`
	Name           string       `json:"name"`
	Titles         []string     `json:"titles"`
	Bio            string       `json:"bio"`
	Skills         []string     `json:"skills"`
	Projects       []ProjectDTO `json:"projects"`
	Socials        SocialsDTO   `json:"socials"`
	ProfilePicture string       `json:"profile_picture"`
	Email          string       `json:"email"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

func ToPortfolioDTO(p *portfolio.Portfolio) PortfolioDTO {
	dto := PortfolioDTO{
		OwnerID:        p.OwnerID.String(),
		Name:           p.Name,
		Titles:         p.Titles,
		Bio:            p.Bio,
		Skills:         p.Skills,
		Socials:        SocialsDTO{LinkedIn: p.Socials.LinkedIn, GitHub: p.Socials.GitHub},
		ProfilePicture: p.ProfilePicture,
		Email:          p.Email,
		UpdatedAt:      p.UpdatedAt,
	}
	dto.Projects = make([]ProjectDTO, len(p.Projects))
	for i, pr := range p.Projects {
		dto.Projects[i] = ProjectDTO{
			Title:       pr.Title,
			Description: pr.Description,
			Link:        pr.Link,
			Image:       pr.Image,
		}
	}
	return dto
}

// UpdatePortfolioRequest is the flat editor's merge-write body: absent
// fields stay untouched, supplied sequences replace the stored ones.
type UpdatePortfolioRequest struct {
	Name           *string       `json:"name"`
	Titles         *[]string     `json:"titles"`
	Bio            *string       `json:"bio"`
	Skills         *[]string     `json:"skills"`
	Projects       *[]ProjectDTO `json:"projects"`
	Socials        *SocialsDTO   `json:"socials"`
	ProfilePicture *string       `json:"profile_picture"`
	Email          *string       `json:"email"`
}

func (r *UpdatePortfolioRequest) ToPatch() portfolio.Patch {
	patch := portfolio.Patch{
		Name:           r.Name,
		Titles:         r.Titles,
		Bio:            r.Bio,
		Skills:         r.Skills,
		ProfilePicture: r.ProfilePicture,
		Email:          r.Email,
	}
	if r.Projects != nil {
		projects := make([]portfolio.Project, len(*r.Projects))
		for i, p := range *r.Projects {
			projects[i] = portfolio.Project{
				Title:       p.Title,
				Description: p.Description,
				Link:        p.Link,
				Image:       p.Image,
			}
		}
		patch.Projects = &projects
	}
	if r.Socials != nil {
		patch.Socials = &portfolio.Socials{LinkedIn: r.Socials.LinkedIn, GitHub: r.Socials.GitHub}
	}
	return patch
}

// Wizard DTOs

type WizardSessionDTO struct {
	Step       int          `json:"step"`
	TitleInput string       `json:"title_input"`
	Draft      PortfolioDTO `json:"draft"`
	UpdatedAt  time.Time    `json:"updated_at"`
}

func ToWizardSessionDTO(s *wizard.Session) WizardSessionDTO {
	return WizardSessionDTO{
		Step:       s.Step,
		TitleInput: s.TitleInput,
		Draft:      ToPortfolioDTO(s.Draft),
		UpdatedAt:  s.UpdatedAt,
	}
}

type StepRequest struct {
	Action string `json:"action" binding:"required,oneof=next back jump"`
	Step   int    `json:"step"`
}

type AddSkillRequest struct {
	Skill string `json:"skill"`
}

type AddProjectRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	Image       string `json:"image"`
}

type UpdateDraftRequest struct {
	Name       *string `json:"name"`
	Bio        *string `json:"bio"`
	TitleInput *string `json:"title_input"`
	Email      *string `json:"email"`
	LinkedIn   *string `json:"linkedin"`
	GitHub     *string `json:"github"`
}

// Preview DTOs

type PreviewDTO struct {
	Portfolio       PortfolioDTO `json:"portfolio"`
	ShareURL        string       `json:"share_url"`
	ContactEmail    string       `json:"contact_email"`
	CanEdit         bool         `json:"can_edit"`
	TitleRotationMS int          `json:"title_rotation_ms"`
}
