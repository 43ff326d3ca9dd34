package tools

// Tool identifies a downloadable deployment tool by cache entry name and
// download location.
type Tool struct {
	Name string
	URL  string
}

// Cache entry names the pipeline resolves. Download URLs are configurable;
// the names are fixed so multiple projects share one cache.
const (
	Linuxdeploy   = "linuxdeploy"
	QtPluginName  = "linuxdeploy-plugin-qt"
	GtkPluginName = "linuxdeploy-plugin-gtk.sh"
)
