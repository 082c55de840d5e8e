package beeola

// BlogPost is the core content type stored in SQLite and rendered by
// templates. Content holds the post body as already-rendered HTML; the
// authoring pipeline renders it before import, and views insert it verbatim.
type BlogPost struct {
	Title     string
	Date      string
	Lang      string
	Tags      []string
	Summary   string
	Link      string
	Slug      string
	Content   string
	Published bool
}

// PostPage bundles everything the post template needs: the post itself, its
// chronological neighbours within the same language, and the language tags
// that have a variant of this post.
type PostPage struct {
	Post         BlogPost
	Prev         *BlogPost
	Next         *BlogPost
	Translations []string
	Views        int
}

// Image holds metadata for an uploaded image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
