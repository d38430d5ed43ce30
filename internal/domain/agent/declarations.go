package agent

// SystemInstruction primes the model for its role on the desktop.
const SystemInstruction = `You are ROS Assistant, the integrated AI brain of this web-based operating system.
You are helpful, concise, and act like a sophisticated futuristic terminal interface.

You have FULL CONTROL over the virtual file system.
If a user asks you to "create a python script" or "make a website", you should use the 'writeFile' tool to actually create the file in the OS.

Common paths:
- /home/user/documents
- /home/user/projects

You can also open apps. If you write code for the user, open it in the 'code' app (Code Studio) so they can run it.
If you write HTML, tell them to open it in the Browser.

Always respond in a technical but friendly manner.`

// Schema is the subset of JSON schema used by function declarations.
type Schema struct {
	Type        string            `json:"type"`
	Description string            `json:"description,omitempty"`
	Enum        []string          `json:"enum,omitempty"`
	Properties  map[string]Schema `json:"properties,omitempty"`
	Required    []string          `json:"required,omitempty"`
}

// Declaration describes one tool to the model.
type Declaration struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Parameters  Schema `json:"parameters"`
}

// Declarations returns the tool surface offered to the model. appIDs
// constrains openApp to the registered applications.
func Declarations(appIDs []string) []Declaration {
	str := func(desc string) Schema { return Schema{Type: "string", Description: desc} }

	return []Declaration{
		{
			Name:        "openApp",
			Description: "Opens an application on the OS.",
			Parameters: Schema{
				Type: "object",
				Properties: map[string]Schema{
					"appId": {
						Type:        "string",
						Description: "The ID of the app to open.",
						Enum:        appIDs,
					},
					"filePath": str("Optional file path to open in the app (e.g., /home/user/doc.txt)"),
				},
				Required: []string{"appId"},
			},
		},
		{
			Name:        "closeApp",
			Description: "Closes the currently active window or a specific app.",
			Parameters: Schema{
				Type:       "object",
				Properties: map[string]Schema{"target": str(`Either "active" or the app ID.`)},
			},
		},
		{
			Name:        "changeWallpaper",
			Description: "Changes the desktop wallpaper to a random scenic image.",
			Parameters:  Schema{Type: "object", Properties: map[string]Schema{}},
		},
		{
			Name:        ToolListFiles,
			Description: "Lists files in a specific directory.",
			Parameters: Schema{
				Type:       "object",
				Properties: map[string]Schema{"path": str("The directory path to list.")},
				Required:   []string{"path"},
			},
		},
		{
			Name:        ToolReadFile,
			Description: "Reads the content of a file.",
			Parameters: Schema{
				Type:       "object",
				Properties: map[string]Schema{"path": str("The file path to read.")},
				Required:   []string{"path"},
			},
		},
		{
			Name:        ToolWriteFile,
			Description: "Writes content to a file. Overwrites if exists. Creates if missing.",
			Parameters: Schema{
				Type: "object",
				Properties: map[string]Schema{
					"path":    str("The file path."),
					"content": str("The content to write."),
				},
				Required: []string{"path", "content"},
			},
		},
	}
}
