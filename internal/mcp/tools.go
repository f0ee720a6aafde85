package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listTutorialsTool defines the list_tutorials MCP tool.
var listTutorialsTool = mcp.NewTool("list_tutorials",
	mcp.WithDescription("List the tutorials in the library, newest first, with their IDs, authors and reading times."),
	mcp.WithString("difficulty",
		mcp.Description("Only return tutorials of this level"),
		mcp.Enum("Beginner", "Intermediate", "Advanced"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of tutorials to return (default 50)"),
	),
)

// getTutorialTool defines the get_tutorial MCP tool.
var getTutorialTool = mcp.NewTool("get_tutorial",
	mcp.WithDescription("Get a tutorial by ID. Single-document tutorials return their full markdown; multi-chapter tutorials return the chapter list."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Tutorial ID as returned by list_tutorials"),
	),
)

// getChapterTool defines the get_chapter MCP tool.
var getChapterTool = mcp.NewTool("get_chapter",
	mcp.WithDescription("Get the markdown of one chapter of a multi-chapter tutorial."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Tutorial ID"),
	),
	mcp.WithNumber("chapter",
		mcp.Required(),
		mcp.Description("Chapter number, starting at 1"),
	),
)
