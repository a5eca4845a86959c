package handlers

// AppHandlers holds every handler of the application.
type AppHandlers struct {
	MatchingHandler *MatchingHandler
	ProfileHandler  *ProfileHandler
}
