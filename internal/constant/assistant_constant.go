package constant

// Coded tool names, as the agent network addresses them.
const (
	ToolAddPdfToKnowledge    = "add_pdf_to_knowledge"
	ToolQueryPdfKnowledge    = "query_pdf_knowledge"
	ToolExtractPdfKnowledge  = "extract_pdf_knowledge"
	ToolCommitToMemory       = "commit_to_memory"
	ToolRecallMemory         = "recall_memory"
	ToolApprovedSupplierDB   = "approved_supplier_database"
	ToolProductionParameters = "production_parameter_database"
	ToolComplianceChecklist  = "compliance_checklist_database"
	ToolQualityFailureModes  = "quality_failure_mode_database"
)

// Chat socket event types.
const (
	ChatEventUserQuery     = "user_query"
	ChatEventUserMessage   = "user_message"
	ChatEventAgentResponse = "agent_response"
	ChatEventNotification  = "notification"
)

// Task type hints passed to the embedding provider.
const (
	TaskTypeDocument = "RETRIEVAL_DOCUMENT"
	TaskTypeQuery    = "RETRIEVAL_QUERY"
)

// InitialPrompt is the thread prompt shown on a fresh conversation.
const InitialPrompt = "Please enter your query or upload a PDF:\n"

// Notification event types published to the event bus.
const (
	EventDocumentIngested = "DOCUMENT_INGESTED"
	EventTopicCommitted   = "TOPIC_COMMITTED"
)
