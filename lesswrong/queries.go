package lesswrong

// queries maps operation names to the GraphQL documents that implement them
var queries = map[string]string{
	"GetUser":         getUserQuery,
	"GetUserPosts":    getUserPostsQuery,
	"GetUserComments": getUserCommentsQuery,
	"GetPostById":     getPostByIDQuery,
	"SearchBySlug":    searchBySlugQuery,
	"SearchPosts":     searchPostsQuery,
	"GetTags":         getTagsQuery,
	"GetTagPosts":     getTagPostsQuery,
	"CreatePost":      createPostMutation,
	"GetMyDrafts":     getMyDraftsQuery,
}

const getUserQuery = `
query GetUser($slug: String!) {
	user(input: {selector: {slug: $slug}}) {
		result {
			_id
			username
			displayName
			slug
			karma
		}
	}
}`

const getUserPostsQuery = `
query GetUserPosts($userId: String!, $limit: Int) {
	posts(input: {terms: {view: "userPosts", userId: $userId, limit: $limit}}) {
		results {
			_id
			title
			slug
			pageUrl
			postedAt
			baseScore
			voteCount
			commentCount
			contents {
				markdown
			}
		}
	}
}`

const getUserCommentsQuery = `
query GetUserComments($userId: String!, $limit: Int) {
	comments(input: {terms: {view: "profileComments", userId: $userId, limit: $limit}}) {
		results {
			_id
			postedAt
			pageUrl
			baseScore
			voteCount
			post {
				_id
				title
				slug
			}
			contents {
				markdown
				plaintextDescription
			}
		}
	}
}`

const getPostByIDQuery = `
query GetPostById($documentId: String!) {
	post(input: {selector: {documentId: $documentId}}) {
		result {
			_id
			title
			slug
			pageUrl
			postedAt
			baseScore
			voteCount
			commentCount
			user {
				displayName
				slug
			}
			contents {
				markdown
			}
		}
	}
}`

const searchBySlugQuery = `
query SearchBySlug($limit: Int) {
	posts(input: {terms: {limit: $limit}}) {
		results {
			_id
			title
			slug
			pageUrl
			postedAt
			baseScore
			voteCount
			commentCount
			user {
				displayName
				slug
			}
			contents {
				markdown
			}
		}
	}
}`

const searchPostsQuery = `
query SearchPosts($searchQuery: String!, $limit: Int) {
	posts(input: {terms: {query: $searchQuery, limit: $limit}}) {
		results {
			_id
			title
			slug
			pageUrl
			postedAt
			baseScore
			voteCount
			commentCount
			user {
				displayName
				slug
			}
		}
	}
}`

const getTagsQuery = `
query GetTags($limit: Int) {
	tags(input: {terms: {view: "allTagsAlphabetical", limit: $limit}}) {
		results {
			_id
			name
			slug
			postCount
		}
	}
}`

const getTagPostsQuery = `
query GetTagPosts($tagId: String!, $limit: Int) {
	posts(input: {terms: {view: "tagRelevance", tagId: $tagId, limit: $limit}}) {
		results {
			_id
			title
			slug
			pageUrl
			postedAt
			baseScore
			voteCount
			commentCount
			user {
				displayName
				slug
			}
			contents {
				markdown
			}
		}
	}
}`

const createPostMutation = `
mutation CreatePost($data: CreatePostDataInput!) {
	createPost(data: $data) {
		data {
			_id
			title
			slug
			pageUrl
			draft
		}
	}
}`

const getMyDraftsQuery = `
query GetMyDrafts($limit: Int) {
	posts(input: {terms: {view: "drafts", limit: $limit}}) {
		results {
			_id
			title
			slug
			pageUrl
			createdAt
			modifiedAt
			draft
		}
	}
}`
