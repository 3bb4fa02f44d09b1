package content

import "strings"

type Kind string

const (
	KindPost  Kind = "post"
	KindDraft Kind = "draft"
	KindPage  Kind = "page"
	KindEntry Kind = "entry"
)

const (
	PostsFolder  = "_posts"
	DraftsFolder = "_drafts"
	PagesFolder  = "_pages"
)

// ReservedFolders are underscore directories Jekyll uses for its own purposes; they are
// never collections.
var ReservedFolders = []string{"_site", "_sass", "_layouts", "_includes", "_data"}

// Dated reports whether filenames of this kind carry a date prefix.
func (k Kind) Dated() bool { return k == KindPost }

// FolderFor maps a kind to its folder under the site root. collection is only used
// for KindEntry.
func FolderFor(kind Kind, collection string) string {
	switch kind {
	case KindPost:
		return PostsFolder
	case KindDraft:
		return DraftsFolder
	case KindPage:
		return PagesFolder
	default:
		return CollectionFolder(collection)
	}
}

func CollectionFolder(name string) string {
	return "_" + strings.TrimPrefix(strings.TrimSpace(name), "_")
}

func KindForFolder(folder string) Kind {
	switch folder {
	case PostsFolder:
		return KindPost
	case DraftsFolder:
		return KindDraft
	case PagesFolder:
		return KindPage
	default:
		return KindEntry
	}
}

func isReserved(folder string) bool {
	for _, r := range ReservedFolders {
		if r == folder {
			return true
		}
	}
	return false
}
