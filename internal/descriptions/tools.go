package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	// Detection Tools
	DetectFieldsDescription = `Detect signable fields in a PDF document and infer who should fill each one.

**When to use:** Preparing an unstructured PDF (contract, lease, NDA, consent form) for electronic signature and you need to know where signature, initials, date, and text fields belong.

**Why it's useful:** Combines several detection strategies (AcroForm widgets, anchor tags, sender variables, label keywords, underlines, and drawn checkboxes), then merges overlapping signals and assigns each field to a recipient role or to the sender.

**Examples:**
• Prepare a lease: "Detect fields in lease-agreement.pdf so tenant and landlord signatures can be placed"
• Template authoring: "Find the [sig|role:client] anchors embedded in contract-template.pdf"
• Legacy scans: "Locate the underlined blanks on scanned-waiver.pdf"

**Common workflows:**
1. Envelope Setup: Detect fields → Review roles and confidences → Create signing tabs
2. Template Conversion: Detect anchors and variables → Map roles to recipients → Save template
3. Quality Review: Detect fields → Inspect low-confidence results → Adjust document

**Best practices:** Validate the file first with pdf_validate_file; pass a higher threshold to keep only high-confidence fields, or a lower one to review every candidate.`

	PDFValidateFileDescription = `Verify PDF file integrity and readability before processing.

**When to use:** Before attempting to detect fields in any PDF file, especially in automated workflows or when handling user uploads.

**Why it's useful:** Prevents processing errors, identifies corrupted files early, and ensures compatibility with the detection pipeline.

**Examples:**
• Batch processing safety: "Validate all PDFs in /contracts/ before bulk field detection"
• Upload verification: "Check user-uploaded agreement.pdf is valid before processing"
• Quality control: "Verify exported-form.pdf is readable before sending for signature"

**Common workflows:**
1. Automated Processing: Validate → Detect fields if valid → Handle errors gracefully
2. File Quality Check: Validate → Report issues → Fix or reject bad files
3. Pre-processing Pipeline: Validate → Route to detection → Review results

**Best practices:** Always run this first in automated workflows, essential for production systems handling unknown PDFs.`

	DetectionServerInfoDescription = `Get information about the detection server configuration and capabilities.

**When to use:** Need to know which detection strategies are active, the configured thresholds, or the directory the server is scoped to.

**Why it's useful:** Helps debug unexpected detection results and lets clients adapt to the server's configured limits before sending work.

**Examples:**
• Capability discovery: "List the detection strategies this server runs"
• Threshold check: "What confidence threshold is the server filtering at?"
• Scope check: "Which directory is the server allowed to read PDFs from?"

**Common workflows:**
1. Client Startup: Get server info → Record capabilities → Tailor requests
2. Debugging: Get server info → Compare thresholds → Re-run detection
3. Operations: Get server info → Verify configuration → Monitor deployments

**Best practices:** Call once at session start; thresholds shown here apply unless overridden per request.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"detect_fields":         DetectFieldsDescription,
	"pdf_validate_file":     PDFValidateFileDescription,
	"detection_server_info": DetectionServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
