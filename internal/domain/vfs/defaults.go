package vfs

const (
	welcomeText = "Welcome to GeminiOS!"
	testScript  = "console.log(\"Hello from the Virtual Machine!\");\nalert(\"Code Execution Successful\");"
)

// factoryNodes builds the default tree:
//
//	/home/user/documents/hello.txt
//	/home/user/projects/test.js
//	/bin
func factoryNodes() map[string]*node {
	nodes := make(map[string]*node)
	add := func(parent, n *node) {
		nodes[n.id] = n
		if parent != nil {
			parent.link(n)
		}
	}

	root := newFolder(RootID, "root", "")
	add(nil, root)

	home := newFolder("home", "home", root.id)
	add(root, home)
	user := newFolder("user", "user", home.id)
	add(home, user)

	docs := newFolder("docs", "documents", user.id)
	add(user, docs)
	add(docs, newFile("f1", "hello.txt", docs.id, welcomeText))

	projects := newFolder("projects", "projects", user.id)
	add(user, projects)
	add(projects, newFile("f2", "test.js", projects.id, testScript))

	add(root, newFolder("bin", "bin", root.id))

	return nodes
}
