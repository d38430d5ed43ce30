/*
Package browser implements the Browser app.

Address bar input is normalized the way the desktop's browser always has:
http(s) and local:// addresses are kept, anything else becomes a search
on HomeURL. Web pages are rendered by the client; the provider only
tracks them. Local pages are HTML files from the virtual file system,
returned with their <title> (the file name when absent), a sanitized copy
of the markup and a plain-text excerpt.

Each browser window has its own session with a current URL and a back
stack.
*/
package browser
