package app

import (
	"gorm.io/gorm"

	catalogrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/catalog"
	projectrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/project"
	userrepo "github.com/yungbote/stackadvisor-backend/internal/data/repos/user"
	"github.com/yungbote/stackadvisor-backend/internal/platform/logger"
)

type Repos struct {
	User           userrepo.UserRepo
	Category       catalogrepo.CategoryRepo
	Technology     catalogrepo.TechnologyRepo
	Tag            catalogrepo.TagRepo
	Project        projectrepo.ProjectRepo
	Recommendation projectrepo.RecommendationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:           userrepo.NewUserRepo(db, log),
		Category:       catalogrepo.NewCategoryRepo(db, log),
		Technology:     catalogrepo.NewTechnologyRepo(db, log),
		Tag:            catalogrepo.NewTagRepo(db, log),
		Project:        projectrepo.NewProjectRepo(db, log),
		Recommendation: projectrepo.NewRecommendationRepo(db, log),
	}
}
