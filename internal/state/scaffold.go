package state

import "editkit/internal/vfs"

const scaffoldHTML = `<!DOCTYPE html>
<html>
  <head>
    <title>New Project</title>
    <link rel="stylesheet" href="css/style.css">
  </head>
  <body>
    <h1>Hello, world!</h1>
    <script src="js/app.js"></script>
  </body>
</html>
`

const scaffoldCSS = `body {
  font-family: sans-serif;
  margin: 2rem;
}
`

const scaffoldJS = `console.log("Hello, world!");
`

// DefaultProject builds the initial project tree used when no project
// file exists yet: a minimal static web page.
func DefaultProject() *vfs.Folder {
	return &vfs.Folder{Children: map[string]vfs.Node{
		"index.html": vfs.NewFile(scaffoldHTML),
		"css": &vfs.Folder{Children: map[string]vfs.Node{
			"style.css": vfs.NewFile(scaffoldCSS),
		}},
		"js": &vfs.Folder{Children: map[string]vfs.Node{
			"app.js": vfs.NewFile(scaffoldJS),
		}},
	}}
}
