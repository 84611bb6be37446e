package application

import "github.com/oksasatya/noteful/internal/domain/entity"

type (
	FolderService = NamedService[entity.Folder]
	TagService    = NamedService[entity.Tag]
)
