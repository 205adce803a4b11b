package handlers

// HandlerBundle groups the handler sets that route registration needs.
type HandlerBundle struct {
	Consultation *ConsultationHandler
	Admin        *AdminHandler
	Portal       *PortalHandler
	Chat         *ChatHandler
}
