package providers

import (
	"github.com/samber/do/v2"

	"github.com/writeflowapp/writeflow-server/internal/logger"
	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
	"github.com/writeflowapp/writeflow-server/internal/websearch"
)

// ProvideContextAssembler provides the prompt context assembler.
func ProvideContextAssembler(i do.Injector) (*service.ContextAssembler, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)
	return service.NewContextAssembler(storeHandle.Store, log.Logger), nil
}

// ProvideBookService provides the book shelf service.
func ProvideBookService(i do.Injector) (*service.BookService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewBookService(storeHandle.Store, log.Logger), nil
}

// ProvideNoteService provides the chapter note service.
func ProvideNoteService(i do.Injector) (*service.NoteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNoteService(storeHandle.Store, log.Logger), nil
}

// ProvideDistillService provides the note distillation service.
func ProvideDistillService(i do.Injector) (*service.DistillService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*synthesis.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDistillService(storeHandle.Store, engine, log.Logger), nil
}

// ProvideChatService provides the book chat service.
func ProvideChatService(i do.Injector) (*service.ChatService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*synthesis.Engine](i)
	assembler := do.MustInvoke[*service.ContextAssembler](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewChatService(storeHandle.Store, engine, assembler, log.Logger), nil
}

// ProvideSocialService provides the social content service.
func ProvideSocialService(i do.Injector) (*service.SocialService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*synthesis.Engine](i)
	assembler := do.MustInvoke[*service.ContextAssembler](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSocialService(storeHandle.Store, engine, assembler, log.Logger), nil
}

// ProvideNarrativeService provides the cross-book narrative service.
func ProvideNarrativeService(i do.Injector) (*service.NarrativeService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*synthesis.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewNarrativeService(storeHandle.Store, engine, log.Logger), nil
}

// ProvideDigestService provides the weekly digest service.
func ProvideDigestService(i do.Injector) (*service.DigestService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*synthesis.Engine](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDigestService(storeHandle.Store, engine, log.Logger), nil
}

// ProvideResearchService provides the article and scholar research service.
func ProvideResearchService(i do.Injector) (*service.ResearchService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	engine := do.MustInvoke[*synthesis.Engine](i)
	serper := do.MustInvoke[*websearch.SerperClient](i)
	crossref := do.MustInvoke[*websearch.CrossrefClient](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewResearchService(storeHandle.Store, engine, serper, crossref, log.Logger), nil
}

// ProvideProfileService provides the voice profile service.
func ProvideProfileService(i do.Injector) (*service.ProfileService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewProfileService(storeHandle.Store, log.Logger), nil
}

// ProvideServices bundles all business services for the API server.
func ProvideServices(i do.Injector) (*service.Services, error) {
	return &service.Services{
		Books:     do.MustInvoke[*service.BookService](i),
		Notes:     do.MustInvoke[*service.NoteService](i),
		Distill:   do.MustInvoke[*service.DistillService](i),
		Chat:      do.MustInvoke[*service.ChatService](i),
		Social:    do.MustInvoke[*service.SocialService](i),
		Narrative: do.MustInvoke[*service.NarrativeService](i),
		Digest:    do.MustInvoke[*service.DigestService](i),
		Research:  do.MustInvoke[*service.ResearchService](i),
		Profile:   do.MustInvoke[*service.ProfileService](i),
	}, nil
}
