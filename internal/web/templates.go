package web

// layoutTemplate wraps every page. Pages define "title" and "content".
const layoutTemplate = `{{define "layout"}}<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{template "title" .}} · primer</title>
  <link rel="stylesheet" href="/static/style.css">
</head>
<body>
  <header class="top-bar">
    <a href="/" class="brand">primer</a>
    <nav><a href="/">Tutorials</a> <a href="/admin">Admin</a></nav>
  </header>
  <main class="content">
    {{template "content" .}}
  </main>
</body>
</html>{{end}}`

const indexTemplate = `{{define "title"}}Tutorials{{end}}
{{define "content"}}
<h1>Tutorials</h1>
{{if .Degraded}}<p class="notice">The tutorial list is temporarily unavailable. Please try again shortly.</p>{{end}}
{{if .Tutorials}}
<ul class="cards">
  {{range .Tutorials}}
  <li class="card">
    <a href="/tutorial/{{.ID}}"><h2>{{.Title}}</h2></a>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
    <p class="meta">
      <span class="badge">{{.Difficulty}}</span>
      {{if .Author}}<span>by {{.Author}}</span>{{end}}
      {{if .Category}}<span>{{.Category}}</span>{{end}}
      {{if .ReadTime}}<span>{{.ReadTime}} min read</span>{{end}}
      {{if .TotalChapters}}<span>{{.TotalChapters}} chapters</span>{{end}}
    </p>
  </li>
  {{end}}
</ul>
{{else if not .Degraded}}
<p class="empty">No tutorials yet.</p>
{{end}}
{{end}}`

const tutorialTemplate = `{{define "title"}}{{.Tutorial.Title}}{{end}}
{{define "content"}}
<article>
  <h1>{{.Tutorial.Title}}</h1>
  <p class="meta">
    <span class="badge">{{.Tutorial.Difficulty}}</span>
    {{if .Tutorial.Author}}<span>by {{.Tutorial.Author}}</span>{{end}}
    {{if .Tutorial.ReadTime}}<span>{{.Tutorial.ReadTime}} min read</span>{{end}}
    <a href="{{.Tutorial.GitHubURL}}">View on GitHub</a>
  </p>
  {{if .Tutorial.Description}}<p class="lead">{{.Tutorial.Description}}</p>{{end}}
  {{if .Chapters}}
  <h2>Chapters</h2>
  <ol class="toc">
    {{range .Chapters}}
    <li value="{{.Order}}"><a href="/tutorial/{{$.Tutorial.ID}}/chapter/{{.Order}}">{{.Title}}</a>{{if .ReadTime}} <span class="meta">{{.ReadTime}} min</span>{{end}}</li>
    {{end}}
  </ol>
  {{else if .Body}}
  <div class="markdown">{{.Body}}</div>
  {{else}}
  <p class="empty">This tutorial has no content yet.</p>
  {{end}}
</article>
{{end}}`

const chapterTemplate = `{{define "title"}}{{.Chapter.Title}} · {{.Tutorial.Title}}{{end}}
{{define "content"}}
<article>
  <p class="crumbs"><a href="/tutorial/{{.Tutorial.ID}}">{{.Tutorial.Title}}</a> · Chapter {{.Position}} of {{.Total}}</p>
  <div class="markdown">{{.Body}}</div>
  <nav class="pager">
    {{if .Prev}}<a class="prev" href="/tutorial/{{.Tutorial.ID}}/chapter/{{.Prev}}">&larr; Previous</a>{{end}}
    {{if .Next}}<a class="next" href="/tutorial/{{.Tutorial.ID}}/chapter/{{.Next}}">Next &rarr;</a>{{end}}
  </nav>
</article>
{{end}}`

const adminTemplate = `{{define "title"}}Admin{{end}}
{{define "content"}}
<h1>Admin</h1>
<form id="import-form" class="panel">
  <label for="github-url">GitHub file or folder URL</label>
  <input id="github-url" name="githubUrl" type="url" required placeholder="https://github.com/owner/repo/tree/main/docs">
  <button type="submit">Import</button>
</form>
<pre id="import-result" class="result" hidden></pre>
<h2>Tutorials</h2>
{{if .Degraded}}<p class="notice">The tutorial list is temporarily unavailable.</p>{{end}}
<table class="admin-list">
  <thead><tr><th>Title</th><th>Author</th><th>Chapters</th><th>Added</th><th></th></tr></thead>
  <tbody>
  {{range .Tutorials}}
  <tr>
    <td><a href="/tutorial/{{.ID}}">{{.Title}}</a></td>
    <td>{{.Author}}</td>
    <td>{{.TotalChapters}}</td>
    <td>{{.CreatedAt.Format "2006-01-02"}}</td>
    <td><button class="delete" data-id="{{.ID}}" data-title="{{.Title}}">Delete</button></td>
  </tr>
  {{end}}
  </tbody>
</table>
<script>
document.getElementById('import-form').addEventListener('submit', async (e) => {
  e.preventDefault();
  const out = document.getElementById('import-result');
  const githubUrl = document.getElementById('github-url').value;
  const res = await fetch('/api/admin/add', {
    method: 'POST',
    headers: {'Content-Type': 'application/json'},
    body: JSON.stringify({githubUrl}),
  });
  out.hidden = false;
  out.textContent = JSON.stringify(await res.json(), null, 2);
  if (res.ok) setTimeout(() => location.reload(), 1500);
});
document.querySelectorAll('button.delete').forEach((btn) => {
  btn.addEventListener('click', async () => {
    if (!confirm('Delete "' + btn.dataset.title + '"?')) return;
    const res = await fetch('/api/admin/' + btn.dataset.id, {method: 'DELETE'});
    if (res.ok) location.reload();
    else alert((await res.json()).error);
  });
});
</script>
{{end}}`

const errorTemplate = `{{define "title"}}{{.Status}}{{end}}
{{define "content"}}
<h1>{{.Status}}</h1>
<p>{{.Message}}</p>
<p><a href="/">Back to tutorials</a></p>
{{end}}`

const cssContent = `:root {
  --bg: #ffffff;
  --fg: #1f2328;
  --muted: #656d76;
  --accent: #0969da;
  --border: #d0d7de;
  --panel: #f6f8fa;
}
* { box-sizing: border-box; }
body { margin: 0; font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Helvetica, Arial, sans-serif; color: var(--fg); background: var(--bg); line-height: 1.6; }
a { color: var(--accent); text-decoration: none; }
a:hover { text-decoration: underline; }
.top-bar { display: flex; justify-content: space-between; align-items: center; padding: 0.75rem 1.5rem; border-bottom: 1px solid var(--border); }
.top-bar nav a { margin-left: 1rem; }
.brand { font-weight: 700; font-size: 1.2rem; color: var(--fg); }
.content { max-width: 860px; margin: 0 auto; padding: 1.5rem; }
.cards { list-style: none; padding: 0; display: grid; gap: 1rem; }
.card { border: 1px solid var(--border); border-radius: 8px; padding: 1rem 1.25rem; }
.card h2 { margin: 0 0 0.25rem; font-size: 1.2rem; }
.meta { color: var(--muted); font-size: 0.9rem; display: flex; flex-wrap: wrap; gap: 0.75rem; align-items: center; }
.badge { background: var(--panel); border: 1px solid var(--border); border-radius: 999px; padding: 0 0.6rem; }
.notice { background: #fff8c5; border: 1px solid #d4a72c; border-radius: 6px; padding: 0.75rem 1rem; }
.empty { color: var(--muted); }
.lead { font-size: 1.1rem; color: var(--muted); }
.toc li { margin: 0.3rem 0; }
.crumbs { color: var(--muted); font-size: 0.9rem; }
.pager { display: flex; justify-content: space-between; border-top: 1px solid var(--border); margin-top: 2rem; padding-top: 1rem; }
.pager .next { margin-left: auto; }
.markdown pre { background: var(--panel); padding: 1rem; border-radius: 6px; overflow-x: auto; }
.markdown code { font-family: ui-monospace, SFMono-Regular, Menlo, monospace; font-size: 0.9em; }
.markdown table { border-collapse: collapse; }
.markdown th, .markdown td { border: 1px solid var(--border); padding: 0.3rem 0.6rem; }
.panel { display: flex; flex-direction: column; gap: 0.5rem; background: var(--panel); border: 1px solid var(--border); border-radius: 8px; padding: 1rem; }
.panel input { padding: 0.5rem; border: 1px solid var(--border); border-radius: 6px; }
.panel button, .delete { align-self: flex-start; padding: 0.4rem 1rem; border-radius: 6px; border: 1px solid var(--border); cursor: pointer; }
.result { background: var(--panel); padding: 1rem; border-radius: 6px; white-space: pre-wrap; }
.admin-list { width: 100%; border-collapse: collapse; }
.admin-list th, .admin-list td { text-align: left; border-bottom: 1px solid var(--border); padding: 0.4rem; }
`
